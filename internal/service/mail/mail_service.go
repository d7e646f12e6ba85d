// Package mail 提供邮件通知发送服务
// 基于SMTP中继投递，不做失败重试
package mail

import (
	"github.com/weiwangfds/filebox/config"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/logger"
	"gopkg.in/gomail.v2"
)

// Envelope 邮件信封
// 承载一封待发送邮件的地址信息和内容
type Envelope struct {
	From     string // 发件人地址
	To       string // 收件人地址
	ReplyTo  string // 回复地址，可选
	Subject  string // 邮件主题
	HTMLBody string // HTML格式正文
}

// Sender 邮件发送服务接口
// 同步调用外部SMTP中继，调用方对所有失败统一按"投递失败"处理
type Sender interface {
	// Send 发送一封邮件
	// 返回:
	//   error - 错误信息，中继连接失败、投递失败和信封无效分别携带不同错误码
	Send(env Envelope) error
}

// smtpSender 基于gomail的SMTP发送实现
type smtpSender struct {
	dialer *gomail.Dialer
}

// NewSender 创建邮件发送服务实例
// 配置中禁用邮件时返回空操作实现，所有发送调用直接成功
func NewSender(cfg config.MailConfig) Sender {
	if !cfg.Enabled {
		logger.Warn("邮件发送未启用，所有通知将被跳过")
		return &noopSender{}
	}

	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send 发送一封邮件
// 先建立中继连接再投递，以便区分连接失败和投递失败
func (s *smtpSender) Send(env Envelope) error {
	if env.From == "" || env.To == "" {
		return apperrors.NewByCode(apperrors.ErrMailEnvelopeBad)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", env.From)
	m.SetHeader("To", env.To)
	if env.ReplyTo != "" {
		m.SetHeader("Reply-To", env.ReplyTo)
	}
	m.SetHeader("Subject", env.Subject)
	m.SetBody("text/html", env.HTMLBody)

	closer, err := s.dialer.Dial()
	if err != nil {
		logger.Errorf("连接SMTP中继失败: %v", err)
		return apperrors.WrapByCode(apperrors.ErrMailRelayFailed, err)
	}
	defer closer.Close()

	if err := gomail.Send(closer, m); err != nil {
		logger.Errorf("邮件投递失败 to=%s: %v", env.To, err)
		return apperrors.WrapByCode(apperrors.ErrMailSendFailed, err)
	}

	logger.Infof("邮件已发送: to=%s subject=%s", env.To, env.Subject)
	return nil
}

// noopSender 空操作发送实现
// 邮件未配置时使用，发送调用直接返回成功
type noopSender struct{}

// Send 跳过发送并记录日志
func (s *noopSender) Send(env Envelope) error {
	logger.Infof("邮件发送被跳过（未启用）: to=%s subject=%s", env.To, env.Subject)
	return nil
}
