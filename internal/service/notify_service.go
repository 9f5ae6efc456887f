// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// NotifyService 邮件通知服务接口
// 未配置 SMTP 时所有方法为空操作
type NotifyService interface {
	// Enabled 返回邮件通知是否启用
	Enabled() bool

	// VanityJobFinished 任务进入终止状态后给任务所有者发邮件
	// 尽力而为, 失败只记日志
	VanityJobFinished(job *domain.VanityJob)
}

// notifyService 实现 NotifyService 接口
type notifyService struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
	config   *ServiceConfig
	dialer   *gomail.Dialer
}

// NewNotifyService 创建 NotifyService 实例
func NewNotifyService(userRepo domain.UserRepository, logger *zap.Logger, config *ServiceConfig) NotifyService {
	s := &notifyService{
		userRepo: userRepo,
		logger:   logger,
		config:   config,
	}
	if config.Notify.Enabled && config.Notify.SmtpHost != "" {
		s.dialer = gomail.NewDialer(
			config.Notify.SmtpHost,
			config.Notify.SmtpPort,
			config.Notify.SmtpUser,
			config.Notify.SmtpPassword,
		)
	}
	return s
}

// Enabled 返回邮件通知是否启用
func (s *notifyService) Enabled() bool {
	return s.dialer != nil
}

// VanityJobFinished 任务进入终止状态后给任务所有者发邮件
func (s *notifyService) VanityJobFinished(job *domain.VanityJob) {
	if s.dialer == nil || job.UID <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.userRepo.GetByUID(ctx, job.UID)
	if err != nil || user == nil || !user.HasEmail() {
		return
	}

	subject := fmt.Sprintf("Vanity search %s: %s", job.Status, job.Pattern)
	body := s.vanityBody(job)

	if err := s.send(user.Email, subject, body); err != nil {
		s.logger.Warn("vanity mail delivery failed",
			zap.Int64(logger.FieldUID, job.UID),
			zap.String(logger.FieldJobID, job.JobID),
			zap.Error(err))
		return
	}
	s.logger.Info("vanity mail sent",
		zap.Int64(logger.FieldUID, job.UID),
		zap.String(logger.FieldJobID, job.JobID))
}

// vanityBody 组装邮件正文
// 私钥不进邮件, 只在接口里返回
func (s *notifyService) vanityBody(job *domain.VanityJob) string {
	switch job.Status {
	case domain.VanityJobStatusDone:
		return fmt.Sprintf(
			"Your vanity address search for %q found a match.\n\nAddress: %s\nAttempts: %d\nElapsed: %s\n\nOpen the toolbox to reveal the private key.\n",
			job.Pattern, job.PublicKey, job.Attempts, job.Elapsed.Round(time.Millisecond))
	case domain.VanityJobStatusNotFound:
		return fmt.Sprintf(
			"Your vanity address search for %q finished without a match.\n\nReason: %s\nAttempts: %d\nElapsed: %s\n",
			job.Pattern, job.Error, job.Attempts, job.Elapsed.Round(time.Millisecond))
	case domain.VanityJobStatusCanceled:
		return fmt.Sprintf(
			"Your vanity address search for %q was canceled.\n\nAttempts: %d\nElapsed: %s\n",
			job.Pattern, job.Attempts, job.Elapsed.Round(time.Millisecond))
	default:
		return fmt.Sprintf(
			"Your vanity address search for %q failed.\n\nError: %s\nAttempts: %d\n",
			job.Pattern, job.Error, job.Attempts)
	}
}

// send 通过 SMTP 发送一封纯文本邮件
func (s *notifyService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	from := s.config.Notify.From
	if from == "" {
		from = s.config.Notify.SmtpUser
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// 确保 notifyService 实现了 NotifyService 接口
var _ NotifyService = (*notifyService)(nil)
