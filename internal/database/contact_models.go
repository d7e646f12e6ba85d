package database

import (
	"time"

	"gorm.io/gorm"
)

// 留言状态
const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)

// ContactMessage 留言模型
// 记录联系表单提交的一条留言
// 创建后不会被任何对外接口修改或删除
type ContactMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键ID，自增
	Name      string         `gorm:"not null;size:255" json:"name"`                 // 留言人姓名，必填
	Email     string         `gorm:"not null;size:255" json:"email"`                // 留言人邮箱，必填
	Subject   string         `gorm:"size:255" json:"subject"`                       // 主题，可选
	Message   string         `gorm:"not null;size:5000" json:"message"`             // 留言内容，必填
	Status    string         `gorm:"not null;size:20;default:unread" json:"status"` // 状态 (unread, read)
	CreatedAt time.Time      `json:"created_at"`                                    // 提交时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 记录最后更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间戳
}

// TableName 指定ContactMessage模型对应的数据库表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
