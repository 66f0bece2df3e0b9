package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"personalsite/internal/config"
)

type EmailRequest struct {
	To       string
	Subject  string
	Body     string
	HTMLBody string // optional alternative part
	ReplyTo  string
}

// EmailSender delivers a message and reports success. Implementations must
// not return transport errors to the caller.
type EmailSender interface {
	SendEmail(ctx context.Context, req EmailRequest) bool
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer   mailDialer
	enabled  bool
	from     string
	fromName string
	log      *slog.Logger
}

func NewEmailService(cfg config.EmailConfig) EmailSender {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return newEmailService(dialer, cfg)
}

func newEmailService(dialer mailDialer, cfg config.EmailConfig) *emailService {
	return &emailService{
		dialer:   dialer,
		enabled:  cfg.Enabled && cfg.SMTPHost != "",
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
		log:      slog.Default().With("component", "email"),
	}
}

func (s *emailService) SendEmail(ctx context.Context, req EmailRequest) bool {
	if !s.enabled {
		s.log.Warn("email is disabled, message not sent", "to", req.To)
		return false
	}
	if err := ctx.Err(); err != nil {
		s.log.Error("email not sent, request cancelled", "to", req.To, "error", err)
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.fromName))
	m.SetHeader("To", req.To)
	m.SetHeader("Subject", req.Subject)
	if strings.TrimSpace(req.ReplyTo) != "" {
		m.SetHeader("Reply-To", req.ReplyTo)
	}
	m.SetBody("text/plain", req.Body)
	if req.HTMLBody != "" {
		m.AddAlternative("text/html", req.HTMLBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("failed to send email", "to", req.To, "error", fmt.Errorf("dial and send: %w", err))
		return false
	}
	s.log.Info("email sent", "to", req.To)
	return true
}
