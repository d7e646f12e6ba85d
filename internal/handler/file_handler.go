package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filebox/internal/database"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/response"
	fileservice "github.com/weiwangfds/filebox/internal/service/file"
)

// FileHandler 文件处理器
// @Description 文件上传与管理相关的HTTP处理器
type FileHandler struct {
	fileService fileservice.Service
}

// NewFileHandler 创建文件处理器实例
func NewFileHandler(fileService fileservice.Service) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// filePayload 构造文件对外响应结构
func (h *FileHandler) filePayload(record *database.Upload) gin.H {
	return gin.H{
		"id":           record.FileID,
		"url":          h.fileService.PublicURL(record.StoredName),
		"originalName": record.OriginalName,
		"type":         record.MimeType,
		"size":         record.FileSize,
		"description":  record.Description,
		"uploadDate":   record.CreatedAt,
	}
}

// UploadFile 上传文件
// @Summary 上传文件
// @Description 上传单个文件，保存落盘并记录元数据
// @Tags 文件管理
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "要上传的文件"
// @Param description formData string false "文件描述"
// @Success 201 {object} response.Response "上传成功"
// @Failure 400 {object} response.Response "未附带文件或文件超限"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/upload [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewByCode(apperrors.ErrFileMissing), apperrors.ErrFileMissing)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.WrapByCode(apperrors.ErrFileReadFailed, err), apperrors.ErrFileReadFailed)
		return
	}
	defer src.Close()

	description := c.PostForm("description")
	mimeType := fileHeader.Header.Get("Content-Type")

	record, err := h.fileService.Upload(fileHeader.Filename, mimeType, description, src)
	if err != nil {
		respondError(c, err, apperrors.ErrFileUploadFailed)
		return
	}

	response.Created(c, "文件上传成功", gin.H{
		"file": h.filePayload(record),
	})
}

// ListFiles 获取文件列表
// @Summary 获取文件列表
// @Description 获取全部文件元数据，按上传时间倒序
// @Tags 文件管理
// @Produce json
// @Success 200 {object} response.Response "文件列表"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	records, err := h.fileService.List()
	if err != nil {
		respondError(c, err, apperrors.ErrDatabaseQuery)
		return
	}

	files := make([]gin.H, 0, len(records))
	for i := range records {
		files = append(files, h.filePayload(&records[i]))
	}

	response.Success(c, gin.H{
		"files": files,
	})
}

// UpdateFile 更新文件元数据
// @Summary 更新文件元数据
// @Description 修改文件的显示名称和描述
// @Tags 文件管理
// @Accept json
// @Produce json
// @Param id path string true "文件ID"
// @Param body body fileservice.UpdateRequest true "待更新字段"
// @Success 200 {object} response.Response "更新成功"
// @Failure 400 {object} response.Response "请求体无效"
// @Failure 404 {object} response.Response "文件不存在"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/files/{id} [put]
func (h *FileHandler) UpdateFile(c *gin.Context) {
	fileID := c.Param("id")

	var req fileservice.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.WrapByCode(apperrors.ErrInvalidParams, err), apperrors.ErrInvalidParams)
		return
	}

	record, err := h.fileService.Update(fileID, req)
	if err != nil {
		respondError(c, err, apperrors.ErrFileUpdateFailed)
		return
	}

	response.SuccessWithMessage(c, "文件更新成功", gin.H{
		"file": gin.H{
			"id":           record.FileID,
			"originalName": record.OriginalName,
			"description":  record.Description,
		},
	})
}

// DeleteFile 删除文件
// @Summary 删除文件
// @Description 删除落盘文件和元数据记录
// @Tags 文件管理
// @Produce json
// @Param id path string true "文件ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.Response "文件不存在"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/files/{id} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID := c.Param("id")

	if err := h.fileService.Delete(fileID); err != nil {
		respondError(c, err, apperrors.ErrFileDeleteFailed)
		return
	}

	response.SuccessWithMessage(c, "文件删除成功", gin.H{
		"id": fileID,
	})
}

// GetFileStats 获取文件统计信息
// @Summary 获取文件统计信息
// @Description 获取文件总数、总大小和类型分布
// @Tags 文件管理
// @Produce json
// @Success 200 {object} response.Response "统计信息"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/files/stats [get]
func (h *FileHandler) GetFileStats(c *gin.Context) {
	stats, err := h.fileService.Stats()
	if err != nil {
		respondError(c, err, apperrors.ErrDatabaseQuery)
		return
	}

	response.Success(c, stats)
}
