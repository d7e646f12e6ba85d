// Package file 提供上传文件管理的业务逻辑
// 串联文件存储与元数据仓储，编排上传、列表、更新、删除流程
// 各步骤顺序执行，后续步骤失败不回滚已完成的步骤
package file

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/weiwangfds/filebox/internal/database"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/logger"
	"github.com/weiwangfds/filebox/internal/service/storage"
	"gorm.io/gorm"
)

// UpdateRequest 文件元数据更新请求
// 仅原始文件名和描述两个字段可修改，nil表示不修改
type UpdateRequest struct {
	OriginalName *string `json:"originalName"` // 新的显示文件名
	Description  *string `json:"description"`  // 新的描述
}

// Service 文件服务接口
// 提供上传文件的完整生命周期管理
type Service interface {
	// Upload 上传文件
	// 参数:
	//   originalName - 客户端上传时的原始文件名
	//   mimeType - 客户端上报的内容类型
	//   description - 可选描述
	//   r - 文件数据流
	// 返回:
	//   *database.Upload - 文件元数据记录
	//   error - 错误信息
	// 流程:
	//   (1) 写入文件存储 (2) 插入元数据记录
	//   存储失败时不产生记录；记录插入失败时尽力清理已落盘的文件
	Upload(originalName, mimeType, description string, r io.Reader) (*database.Upload, error)

	// GetByID 根据文件ID获取元数据记录
	// 记录不存在时错误码为ErrFileNotFound
	GetByID(fileID string) (*database.Upload, error)

	// List 获取全部文件元数据
	// 按创建时间倒序排列，同一时刻创建的记录按插入顺序稳定排列
	List() ([]database.Upload, error)

	// Update 更新文件元数据
	// 仅允许修改原始文件名和描述，记录不存在时错误码为ErrFileNotFound
	Update(fileID string, req UpdateRequest) (*database.Upload, error)

	// Delete 删除文件
	// 流程:
	//   (1) 查找记录 (2) 删除落盘文件（已不存在时跳过） (3) 删除记录
	// 记录不存在时错误码为ErrFileNotFound
	Delete(fileID string) error

	// Stats 获取文件统计信息
	// 包括总数、总大小和各内容类型的数量分布
	Stats() (map[string]interface{}, error)

	// PublicURL 返回落盘文件的对外访问路径
	PublicURL(storedName string) string
}

// fileService 文件服务实现
type fileService struct {
	db      *gorm.DB        // 元数据仓储
	storage storage.Service // 文件存储
}

// NewService 创建文件服务实例
func NewService(db *gorm.DB, storageService storage.Service) Service {
	return &fileService{
		db:      db,
		storage: storageService,
	}
}

// Upload 上传文件
func (s *fileService) Upload(originalName, mimeType, description string, r io.Reader) (*database.Upload, error) {
	logger.Infof("开始上传文件: %s", originalName)

	storedName, size, err := s.storage.Store(originalName, r)
	if err != nil {
		return nil, err
	}

	record := &database.Upload{
		FileID:       uuid.New().String(),
		StoredName:   storedName,
		OriginalName: originalName,
		MimeType:     mimeType,
		FileSize:     size,
		Description:  description,
	}

	if err := s.db.Create(record).Error; err != nil {
		// 记录插入失败时清理已落盘的文件，避免留下孤儿文件
		logger.Errorf("保存文件元数据失败 %s，清理落盘文件: %v", originalName, err)
		if cleanupErr := s.storage.Delete(storedName); cleanupErr != nil {
			logger.Warnf("清理落盘文件失败 %s: %v", storedName, cleanupErr)
		}
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.Infof("文件上传完成: %s (ID: %s, %d 字节)", originalName, record.FileID, size)
	return record, nil
}

// GetByID 根据文件ID获取元数据记录
func (s *fileService) GetByID(fileID string) (*database.Upload, error) {
	var record database.Upload
	if err := s.db.Where("file_id = ?", fileID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrFileNotFound)
		}
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	return &record, nil
}

// List 获取全部文件元数据（创建时间倒序）
func (s *fileService) List() ([]database.Upload, error) {
	var records []database.Upload
	if err := s.db.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		logger.Errorf("获取文件列表失败: %v", err)
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}
	return records, nil
}

// Update 更新文件元数据
func (s *fileService) Update(fileID string, req UpdateRequest) (*database.Upload, error) {
	record, err := s.GetByID(fileID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.OriginalName != nil {
		updates["original_name"] = *req.OriginalName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return record, nil
	}

	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		logger.Errorf("更新文件元数据失败 %s: %v", fileID, err)
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseUpdate, err)
	}

	logger.Infof("文件元数据已更新: %s", fileID)
	return s.GetByID(fileID)
}

// Delete 删除文件
// 记录查找、落盘文件删除和记录删除顺序执行，步骤之间不回滚
func (s *fileService) Delete(fileID string) error {
	record, err := s.GetByID(fileID)
	if err != nil {
		return err
	}

	// 落盘文件可能已被外部移除，此时只删除记录
	if s.storage.Exists(record.StoredName) {
		if err := s.storage.Delete(record.StoredName); err != nil {
			return err
		}
	} else {
		logger.Warnf("落盘文件 %s 不存在，仅删除元数据记录", record.StoredName)
	}

	if err := s.db.Delete(record).Error; err != nil {
		logger.Errorf("删除文件记录失败 %s: %v", fileID, err)
		return apperrors.WrapByCode(apperrors.ErrDatabaseDelete, err)
	}

	logger.Infof("文件删除完成: %s", fileID)
	return nil
}

// Stats 获取文件统计信息
func (s *fileService) Stats() (map[string]interface{}, error) {
	var stats struct {
		TotalFiles int64 `json:"total_files"`
		TotalSize  int64 `json:"total_size"`
	}

	if err := s.db.Model(&database.Upload{}).
		Select("COUNT(*) as total_files, COALESCE(SUM(file_size), 0) as total_size").
		Scan(&stats).Error; err != nil {
		logger.Errorf("获取文件统计失败: %v", err)
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}

	var typeStats []struct {
		MimeType string `json:"mime_type"`
		Count    int64  `json:"count"`
	}

	if err := s.db.Model(&database.Upload{}).
		Select("mime_type, COUNT(*) as count").
		Group("mime_type").
		Order("count DESC").
		Scan(&typeStats).Error; err != nil {
		return nil, apperrors.WrapByCode(apperrors.ErrDatabaseQuery, err)
	}

	return map[string]interface{}{
		"total_files": stats.TotalFiles,
		"total_size":  stats.TotalSize,
		"type_stats":  typeStats,
	}, nil
}

// PublicURL 返回落盘文件的对外访问路径
func (s *fileService) PublicURL(storedName string) string {
	return s.storage.PublicURL(storedName)
}
