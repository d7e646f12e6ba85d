// Package contact 提供联系表单留言的业务逻辑
// 编排留言校验、入库和邮件通知流程
// 记录入库成功后通知失败不会删除已保存的记录
package contact

import (
	"fmt"
	"html"
	"strings"

	"github.com/weiwangfds/filebox/config"
	"github.com/weiwangfds/filebox/internal/database"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/logger"
	"github.com/weiwangfds/filebox/internal/service/mail"
	"gorm.io/gorm"
)

// SubmitRequest 留言提交请求
type SubmitRequest struct {
	Name    string `json:"name"`    // 留言人姓名，必填
	Email   string `json:"email"`   // 留言人邮箱，必填
	Subject string `json:"subject"` // 主题，可选
	Message string `json:"message"` // 留言内容，必填
}

// Service 留言服务接口
type Service interface {
	// Submit 提交一条留言
	// 流程:
	//   (1) 校验必填字段 (2) 保存留言记录 (3) 发送站长通知邮件 (4) 发送自动回复邮件
	// 校验失败不产生任何副作用；记录保存后通知失败不回滚记录；
	// 自动回复失败只记录日志，不影响返回结果
	Submit(req SubmitRequest) (*database.ContactMessage, error)

	// List 获取全部留言
	// 按提交时间倒序排列
	List() ([]database.ContactMessage, error)
}

// contactService 留言服务实现
type contactService struct {
	db      *gorm.DB        // 元数据仓储
	sender  mail.Sender     // 邮件发送服务
	mailCfg config.MailConfig
}

// NewService 创建留言服务实例
func NewService(db *gorm.DB, sender mail.Sender, mailCfg config.MailConfig) Service {
	return &contactService{
		db:      db,
		sender:  sender,
		mailCfg: mailCfg,
	}
}

// Submit 提交一条留言
func (s *contactService) Submit(req SubmitRequest) (*database.ContactMessage, error) {
	// 必填字段校验，任何副作用之前完成
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewByCode(apperrors.ErrContactMissingFields)
	}

	record := &database.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  database.ContactStatusUnread,
	}

	if err := s.db.Create(record).Error; err != nil {
		logger.Errorf("保存留言失败 from=%s: %v", req.Email, err)
		return nil, apperrors.WrapByCode(apperrors.ErrContactSaveFailed, err)
	}

	logger.Infof("留言已保存: id=%d from=%s", record.ID, record.Email)

	// 站长通知失败向调用方报告投递失败，已保存的记录保留
	if err := s.sender.Send(s.ownerEnvelope(record)); err != nil {
		logger.Errorf("站长通知邮件发送失败 id=%d: %v", record.ID, err)
		return record, err
	}

	// 自动回复尽力而为，失败不影响提交结果
	if err := s.sender.Send(s.autoReplyEnvelope(record)); err != nil {
		logger.Warnf("自动回复邮件发送失败 id=%d to=%s: %v", record.ID, record.Email, err)
	}

	return record, nil
}

// List 获取全部留言（提交时间倒序）
func (s *contactService) List() ([]database.ContactMessage, error) {
	var records []database.ContactMessage
	if err := s.db.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		logger.Errorf("获取留言列表失败: %v", err)
		return nil, apperrors.WrapByCode(apperrors.ErrContactListFailed, err)
	}
	return records, nil
}

// ownerEnvelope 构造站长通知邮件
// Reply-To设置为留言人邮箱，方便站长直接回复
func (s *contactService) ownerEnvelope(record *database.ContactMessage) mail.Envelope {
	subject := record.Subject
	if subject == "" {
		subject = "新的站点留言"
	}

	body := fmt.Sprintf(
		"<h3>收到新的站点留言</h3>"+
			"<p><strong>姓名:</strong> %s</p>"+
			"<p><strong>邮箱:</strong> %s</p>"+
			"<p><strong>主题:</strong> %s</p>"+
			"<p><strong>内容:</strong></p><p>%s</p>",
		html.EscapeString(record.Name),
		html.EscapeString(record.Email),
		html.EscapeString(subject),
		html.EscapeString(record.Message),
	)

	return mail.Envelope{
		From:     s.mailCfg.Username,
		To:       s.mailCfg.Owner,
		ReplyTo:  record.Email,
		Subject:  fmt.Sprintf("[留言] %s", subject),
		HTMLBody: body,
	}
}

// autoReplyEnvelope 构造给留言人的自动回复邮件
func (s *contactService) autoReplyEnvelope(record *database.ContactMessage) mail.Envelope {
	body := fmt.Sprintf(
		"<p>%s，您好：</p>"+
			"<p>您的留言已经收到，我们会尽快回复您。</p>"+
			"<p>留言内容：</p><blockquote>%s</blockquote>",
		html.EscapeString(record.Name),
		html.EscapeString(record.Message),
	)

	return mail.Envelope{
		From:     s.mailCfg.Username,
		To:       record.Email,
		Subject:  "您的留言已收到",
		HTMLBody: body,
	}
}
