package handler

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/response"
	contactservice "github.com/weiwangfds/filebox/internal/service/contact"
)

// ContactHandler 留言处理器
// @Description 联系表单相关的HTTP处理器
type ContactHandler struct {
	contactService contactservice.Service
}

// NewContactHandler 创建留言处理器实例
func NewContactHandler(contactService contactservice.Service) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// SubmitContact 提交留言
// @Summary 提交留言
// @Description 保存留言并发送通知邮件
// @Tags 留言管理
// @Accept json
// @Produce json
// @Param body body contactservice.SubmitRequest true "留言内容"
// @Success 200 {object} response.Response "提交成功"
// @Failure 400 {object} response.Response "必填字段缺失"
// @Failure 500 {object} response.Response "保存或通知失败"
// @Router /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req contactservice.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.WrapByCode(apperrors.ErrInvalidParams, err), apperrors.ErrInvalidParams)
		return
	}

	record, err := h.contactService.Submit(req)
	if err != nil {
		respondError(c, err, apperrors.ErrContactSaveFailed)
		return
	}

	response.SuccessWithMessage(c, "留言提交成功", gin.H{
		"id": record.ID,
	})
}

// ListContacts 获取留言列表
// @Summary 获取留言列表
// @Description 获取全部留言，按提交时间倒序
// @Tags 留言管理
// @Produce json
// @Success 200 {object} response.Response "留言列表"
// @Failure 500 {object} response.Response "服务器内部错误"
// @Router /api/contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	records, err := h.contactService.List()
	if err != nil {
		respondError(c, err, apperrors.ErrContactListFailed)
		return
	}

	contacts := make([]gin.H, 0, len(records))
	for i := range records {
		r := &records[i]
		contacts = append(contacts, gin.H{
			"id":          r.ID,
			"name":        r.Name,
			"email":       r.Email,
			"subject":     r.Subject,
			"message":     r.Message,
			"status":      r.Status,
			"submittedAt": r.CreatedAt,
		})
	}

	response.Success(c, gin.H{
		"contacts": contacts,
	})
}
