package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"personalsite/internal/models"
	"personalsite/internal/repositories"
)

// RateLimiter admits or rejects one event for key at now.
type RateLimiter interface {
	CheckAndRecord(key string, now time.Time) bool
}

type ContactService interface {
	// Submit runs the anti-abuse pipeline. It returns nil both for stored
	// messages and for silently dropped ones; *ContactError for client errors.
	Submit(ctx context.Context, sub models.ContactSubmission, ip string) error
	List(ctx context.Context, handled *bool) ([]*models.ContactMessage, error)
	MarkHandled(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	repo     repositories.ContactMessageRepository
	captcha  CaptchaVerifier
	limiter  RateLimiter
	notifier ContactNotifier
	loc      *time.Location

	now   func() time.Time
	newID func() uuid.UUID
	log   *slog.Logger
}

func NewContactService(
	repo repositories.ContactMessageRepository,
	captcha CaptchaVerifier,
	limiter RateLimiter,
	notifier ContactNotifier,
	loc *time.Location,
) ContactService {
	if loc == nil {
		loc = time.UTC
	}
	return &contactService{
		repo:     repo,
		captcha:  captcha,
		limiter:  limiter,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		newID:    uuid.New,
		log:      slog.Default().With("component", "contact"),
	}
}

type outcomeKind int

const (
	proceed outcomeKind = iota
	stopSilently
	fail
)

// outcome is what a pipeline stage hands to the next one.
type outcome struct {
	kind outcomeKind
	err  *ContactError
}

func proceedOutcome() outcome             { return outcome{kind: proceed} }
func stopOutcome() outcome                { return outcome{kind: stopSilently} }
func failOutcome(e *ContactError) outcome { return outcome{kind: fail, err: e} }

func (s *contactService) Submit(ctx context.Context, sub models.ContactSubmission, ip string) error {
	now := s.now()

	stages := []func() outcome{
		func() outcome { return s.checkHoneypot(sub, ip) },
		func() outcome { return s.verifyCaptcha(ctx, sub, ip) },
		func() outcome { return s.checkRateLimit(ip, now) },
	}
	for _, stage := range stages {
		switch o := stage(); o.kind {
		case stopSilently:
			return nil
		case fail:
			return o.err
		}
	}

	msg := &models.ContactMessage{
		ID:        s.newID(),
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: now.UTC(),
		Handled:   false,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}
	s.log.Info("contact message stored", "id", msg.ID, "ip", ip)

	s.notify(ctx, msg, now)
	return nil
}

func (s *contactService) checkHoneypot(sub models.ContactSubmission, ip string) outcome {
	if strings.TrimSpace(sub.Website) != "" {
		s.log.Warn("honeypot triggered", "email", sub.Email, "ip", ip)
		return stopOutcome()
	}
	return proceedOutcome()
}

func (s *contactService) verifyCaptcha(ctx context.Context, sub models.ContactSubmission, ip string) outcome {
	if strings.TrimSpace(sub.RecaptchaToken) == "" {
		s.log.Warn("missing reCAPTCHA token", "ip", ip)
		return failOutcome(ErrCaptchaRequired())
	}

	res := s.captcha.Verify(ctx, sub.RecaptchaToken, ip)
	if res == nil || !res.Success || !s.captcha.IsScoreAcceptable(res.Score) ||
		!s.captcha.IsActionValid(res.Action) || !s.captcha.IsHostnameValid(res.Hostname) {
		attrs := []any{"ip", ip}
		if res != nil {
			attrs = append(attrs, "success", res.Success, "score", res.Score, "action", res.Action,
				"hostname", res.Hostname, "error_codes", res.ErrorCodes)
		}
		s.log.Warn("reCAPTCHA verification failed", attrs...)
		return failOutcome(ErrCaptchaFailed())
	}
	return proceedOutcome()
}

func (s *contactService) checkRateLimit(ip string, now time.Time) outcome {
	if !s.limiter.CheckAndRecord(ip, now) {
		s.log.Warn("rate limit exceeded", "ip", ip)
		return stopOutcome()
	}
	return proceedOutcome()
}

func (s *contactService) notify(ctx context.Context, msg *models.ContactMessage, now time.Time) {
	data := ContactFormEmailData{
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Timestamp: now.In(s.loc).Format("2006-01-02 15:04:05 MST"),
	}
	if !s.notifier.NotifyContact(ctx, data) {
		s.log.Error("contact notification not delivered", "id", msg.ID)
	}
}

func (s *contactService) List(ctx context.Context, handled *bool) ([]*models.ContactMessage, error) {
	var (
		msgs []*models.ContactMessage
		err  error
	)
	if handled != nil && !*handled {
		msgs, err = s.repo.ListUnhandled(ctx)
	} else {
		msgs, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []*models.ContactMessage{}
	}
	return msgs, nil
}

// MarkHandled is a no-op for unknown ids.
func (s *contactService) MarkHandled(ctx context.Context, id uuid.UUID) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil || msg.Handled {
		return nil
	}
	return s.repo.MarkHandled(ctx, id)
}
