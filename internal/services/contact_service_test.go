package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalsite/internal/models"
	"personalsite/internal/ratelimit"
)

var fixedNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

type contactFixture struct {
	svc      *contactService
	repo     *fakeContactRepo
	captcha  *fakeCaptcha
	notifier *fakeNotifier
	clock    *time.Time
}

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()
	f := &contactFixture{
		repo:     &fakeContactRepo{},
		captcha:  &fakeCaptcha{result: &models.CaptchaResult{Success: true, Score: score(0.9)}, minScore: 0.5},
		notifier: &fakeNotifier{ok: true},
	}
	now := fixedNow
	f.clock = &now
	svc := NewContactService(f.repo, f.captcha, ratelimit.New(time.Minute, 5), f.notifier, time.UTC).(*contactService)
	svc.now = func() time.Time { return *f.clock }
	f.svc = svc
	return f
}

func validSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		Name:           "Jane",
		Email:          "jane@x.com",
		Message:        "hi",
		RecaptchaToken: "tok",
	}
}

func TestContactService_Submit_StoresAndNotifies(t *testing.T) {
	f := newContactFixture(t)

	err := f.svc.Submit(context.Background(), validSubmission(), "203.0.113.7")
	require.NoError(t, err)

	require.Equal(t, 1, f.repo.count())
	saved := f.repo.saved[0]
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "Jane", saved.Name)
	assert.Equal(t, "jane@x.com", saved.Email)
	assert.Equal(t, "hi", saved.Message)
	assert.False(t, saved.Handled)
	assert.Equal(t, fixedNow, saved.CreatedAt)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "jane@x.com", f.notifier.calls[0].Email)
	assert.Equal(t, "2025-06-01 10:30:00 UTC", f.notifier.calls[0].Timestamp)
	assert.Equal(t, "203.0.113.7", f.captcha.lastIP)
}

func TestContactService_Submit_HoneypotIsSilent(t *testing.T) {
	f := newContactFixture(t)
	sub := validSubmission()
	sub.Website = "http://spam.example"
	sub.RecaptchaToken = ""

	err := f.svc.Submit(context.Background(), sub, "1.1.1.1")

	require.NoError(t, err)
	assert.Zero(t, f.repo.count())
	assert.Empty(t, f.notifier.calls)
	assert.Zero(t, f.captcha.calls, "honeypot must short-circuit before the captcha call")
}

func TestContactService_Submit_WhitespaceHoneypotIsIgnored(t *testing.T) {
	f := newContactFixture(t)
	sub := validSubmission()
	sub.Website = "   "

	require.NoError(t, f.svc.Submit(context.Background(), sub, "1.1.1.1"))
	assert.Equal(t, 1, f.repo.count())
}

func TestContactService_Submit_CaptchaGating(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		result   *models.CaptchaResult
		action   string
		hostname string
		wantCode ContactErrorCode
	}{
		{name: "missing token", token: "", wantCode: CodeCaptchaRequired},
		{name: "blank token", token: "  ", wantCode: CodeCaptchaRequired},
		{name: "provider failure", token: "tok", result: &models.CaptchaResult{Success: false}, wantCode: CodeCaptchaFailed},
		{name: "low score", token: "tok", result: &models.CaptchaResult{Success: true, Score: score(0.2)}, wantCode: CodeCaptchaFailed},
		{name: "missing score", token: "tok", result: &models.CaptchaResult{Success: true}, wantCode: CodeCaptchaFailed},
		{name: "nil result", token: "tok", result: nil, wantCode: CodeCaptchaFailed},
		{
			name:     "wrong action",
			token:    "tok",
			result:   &models.CaptchaResult{Success: true, Score: score(0.9), Action: "login"},
			action:   "submit",
			wantCode: CodeCaptchaFailed,
		},
		{
			name:     "wrong hostname",
			token:    "tok",
			result:   &models.CaptchaResult{Success: true, Score: score(0.9), Hostname: "evil.example"},
			hostname: "example.com",
			wantCode: CodeCaptchaFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContactFixture(t)
			f.captcha.result = tt.result
			f.captcha.action = tt.action
			f.captcha.hostname = tt.hostname
			sub := validSubmission()
			sub.RecaptchaToken = tt.token

			err := f.svc.Submit(context.Background(), sub, "1.1.1.1")

			ce, ok := AsContactError(err)
			require.True(t, ok, "expected ContactError, got %v", err)
			assert.Equal(t, tt.wantCode, ce.Code)
			assert.Equal(t, http.StatusBadRequest, ce.Status)
			assert.Zero(t, f.repo.count())
			assert.Empty(t, f.notifier.calls)
		})
	}
}

func TestContactService_Submit_ScoreAtThresholdPasses(t *testing.T) {
	f := newContactFixture(t)
	f.captcha.result = &models.CaptchaResult{Success: true, Score: score(0.5)}

	require.NoError(t, f.svc.Submit(context.Background(), validSubmission(), "1.1.1.1"))
	assert.Equal(t, 1, f.repo.count())
}

func TestContactService_Submit_RateLimitDropsSilently(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		require.NoError(t, f.svc.Submit(ctx, validSubmission(), "198.51.100.1"))
	}
	assert.Equal(t, 5, f.repo.count())
	assert.Len(t, f.notifier.calls, 5)

	*f.clock = fixedNow.Add(61 * time.Second)
	require.NoError(t, f.svc.Submit(ctx, validSubmission(), "198.51.100.1"))
	assert.Equal(t, 6, f.repo.count())
}

func TestContactService_Submit_RateLimitPerIP(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.Submit(ctx, validSubmission(), "10.0.0.1"))
		require.NoError(t, f.svc.Submit(ctx, validSubmission(), "10.0.0.2"))
	}
	require.NoError(t, f.svc.Submit(ctx, validSubmission(), "10.0.0.1"))
	require.NoError(t, f.svc.Submit(ctx, validSubmission(), "10.0.0.2"))

	assert.Equal(t, 10, f.repo.count())
}

func TestContactService_Submit_CaptchaFailureDoesNotConsumeQuota(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	f.captcha.result = &models.CaptchaResult{Success: false}
	for i := 0; i < 10; i++ {
		_ = f.svc.Submit(ctx, validSubmission(), "10.0.0.9")
	}

	f.captcha.result = &models.CaptchaResult{Success: true, Score: score(0.9)}
	require.NoError(t, f.svc.Submit(ctx, validSubmission(), "10.0.0.9"))
	assert.Equal(t, 1, f.repo.count())
}

func TestContactService_Submit_NotificationFailureIsSwallowed(t *testing.T) {
	f := newContactFixture(t)
	f.notifier.ok = false

	err := f.svc.Submit(context.Background(), validSubmission(), "1.1.1.1")

	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.count())
	assert.Len(t, f.notifier.calls, 1)
}

func TestContactService_Submit_RepositoryErrorPropagates(t *testing.T) {
	f := newContactFixture(t)
	f.repo.createErr = errors.New("db down")

	err := f.svc.Submit(context.Background(), validSubmission(), "1.1.1.1")

	require.Error(t, err)
	_, isClient := AsContactError(err)
	assert.False(t, isClient)
	assert.Empty(t, f.notifier.calls)
}

func TestContactService_Submit_TimestampUsesConfiguredZone(t *testing.T) {
	f := newContactFixture(t)
	f.svc.loc = time.FixedZone("CEST", 2*60*60)

	require.NoError(t, f.svc.Submit(context.Background(), validSubmission(), "1.1.1.1"))
	assert.Equal(t, "2025-06-01 12:30:00 CEST", f.notifier.calls[0].Timestamp)
}

func TestContactService_List(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		sub := validSubmission()
		sub.Message = fmt.Sprintf("msg %d", i)
		require.NoError(t, f.svc.Submit(ctx, sub, fmt.Sprintf("10.0.0.%d", i)))
	}
	require.NoError(t, f.svc.MarkHandled(ctx, f.repo.saved[0].ID))

	all, err := f.svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unhandled := false
	open, err := f.svc.List(ctx, &unhandled)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	handled := true
	withHandled, err := f.svc.List(ctx, &handled)
	require.NoError(t, err)
	assert.Len(t, withHandled, 3)
}

func TestContactService_List_EmptyIsNotNil(t *testing.T) {
	f := newContactFixture(t)

	msgs, err := f.svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestContactService_MarkHandled_UnknownIDIsNoop(t *testing.T) {
	f := newContactFixture(t)

	require.NoError(t, f.svc.MarkHandled(context.Background(), uuid.New()))
	assert.Empty(t, f.repo.handled)
}
