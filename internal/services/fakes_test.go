package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"personalsite/internal/models"
)

type fakeContactRepo struct {
	mu        sync.Mutex
	saved     []*models.ContactMessage
	createErr error
	handled   []uuid.UUID
}

func (f *fakeContactRepo) Create(_ context.Context, msg *models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.saved {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) ListAll(_ context.Context) ([]*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.ContactMessage(nil), f.saved...), nil
}

func (f *fakeContactRepo) ListUnhandled(_ context.Context) ([]*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ContactMessage
	for _, m := range f.saved {
		if !m.Handled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) MarkHandled(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handled = append(f.handled, id)
	for _, m := range f.saved {
		if m.ID == id {
			m.Handled = true
		}
	}
	return nil
}

func (f *fakeContactRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeCaptcha struct {
	result   *models.CaptchaResult
	minScore float64
	action   string
	hostname string
	calls    int
	lastIP   string
}

func (f *fakeCaptcha) Verify(_ context.Context, _ string, remoteIP string) *models.CaptchaResult {
	f.calls++
	f.lastIP = remoteIP
	return f.result
}

func (f *fakeCaptcha) IsScoreAcceptable(score *float64) bool {
	return score != nil && *score >= f.minScore
}

func (f *fakeCaptcha) IsActionValid(action string) bool {
	return f.action == "" || f.action == action
}

func (f *fakeCaptcha) IsHostnameValid(hostname string) bool {
	return f.hostname == "" || f.hostname == hostname
}

type fakeNotifier struct {
	mu    sync.Mutex
	ok    bool
	calls []ContactFormEmailData
}

func (f *fakeNotifier) NotifyContact(_ context.Context, d ContactFormEmailData) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, d)
	return f.ok
}

type fakeEmailSender struct {
	ok       bool
	requests []EmailRequest
}

func (f *fakeEmailSender) SendEmail(_ context.Context, req EmailRequest) bool {
	f.requests = append(f.requests, req)
	return f.ok
}

type fakeDialer struct {
	err  error
	sent []*gomail.Message
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

type fakeTelegram struct {
	err  error
	sent []tgbotapi.MessageConfig
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func score(v float64) *float64 { return &v }
