// Package database 定义了上传文件与留言相关的数据库模型
package database

import (
	"time"

	"gorm.io/gorm"
)

// Upload 上传文件元数据模型
// 记录每个已上传文件的基本信息
// StoredName是落盘使用的唯一文件名，由服务端生成，永不复用
type Upload struct {
	ID           uint           `gorm:"primarykey" json:"id"`                            // 主键ID，自增
	FileID       string         `gorm:"uniqueIndex;not null;size:36" json:"file_id"`     // 文件唯一标识符（UUID格式）
	StoredName   string         `gorm:"uniqueIndex;not null;size:255" json:"stored_name"` // 落盘文件名（时间戳+随机串+扩展名）
	OriginalName string         `gorm:"not null;size:255" json:"original_name"`          // 客户端上传时的原始文件名
	MimeType     string         `gorm:"size:100" json:"mime_type"`                       // 客户端上报的内容类型，未经校验
	FileSize     int64          `gorm:"not null" json:"file_size"`                       // 文件大小，单位为字节
	Description  string         `gorm:"size:1000" json:"description"`                    // 可选描述，创建后可修改
	CreatedAt    time.Time      `json:"created_at"`                                      // 上传时间，创建后不可变
	UpdatedAt    time.Time      `json:"updated_at"`                                      // 记录最后更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间戳
}

// TableName 指定Upload模型对应的数据库表名
func (Upload) TableName() string {
	return "uploads"
}
