package services

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalsite/internal/config"
)

var janeData = ContactFormEmailData{
	Name:      "Jane <admin>",
	Email:     "jane@x.com",
	Message:   "hi & bye",
	Timestamp: "2025-06-01 10:30:00 UTC",
}

func TestEmailContactNotifier(t *testing.T) {
	sender := &fakeEmailSender{ok: true}
	n := NewEmailContactNotifier(sender, "owner@example.com", "New Contact Form Submission")

	require.True(t, n.NotifyContact(context.Background(), janeData))

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, "owner@example.com", req.To)
	assert.Equal(t, "New Contact Form Submission", req.Subject)
	assert.Equal(t, "jane@x.com", req.ReplyTo)
	assert.Contains(t, req.Body, "Name: Jane <admin>")
	assert.Contains(t, req.Body, "Time: 2025-06-01 10:30:00 UTC")
	assert.Contains(t, req.HTMLBody, "Jane &lt;admin&gt;")
	assert.Contains(t, req.HTMLBody, "hi &amp; bye")
}

func TestEmailContactNotifier_PropagatesFailure(t *testing.T) {
	n := NewEmailContactNotifier(&fakeEmailSender{ok: false}, "owner@example.com", "s")
	assert.False(t, n.NotifyContact(context.Background(), janeData))
}

func TestMultiNotifier(t *testing.T) {
	failing := &fakeNotifier{ok: false}
	working := &fakeNotifier{ok: true}

	assert.True(t, MultiNotifier{failing, working}.NotifyContact(context.Background(), janeData))
	assert.Len(t, failing.calls, 1)
	assert.Len(t, working.calls, 1)

	assert.False(t, MultiNotifier{failing}.NotifyContact(context.Background(), janeData))
	assert.False(t, MultiNotifier{}.NotifyContact(context.Background(), janeData))
}

func TestTelegramNotifier(t *testing.T) {
	api := &fakeTelegram{}
	n := newTelegramNotifier(api, 42)

	require.True(t, n.NotifyContact(context.Background(), janeData))

	require.Len(t, api.sent, 1)
	msg := api.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Jane &lt;admin&gt;")
	assert.Contains(t, msg.Text, "hi &amp; bye")
}

func TestTelegramNotifier_SendFailure(t *testing.T) {
	n := newTelegramNotifier(&fakeTelegram{err: errors.New("forbidden")}, 42)
	assert.False(t, n.NotifyContact(context.Background(), janeData))
}

func TestNewTelegramNotifier_Unconfigured(t *testing.T) {
	n, err := NewTelegramNotifier(config.TelegramConfig{Token: "abc"})
	require.NoError(t, err)
	assert.Nil(t, n)
}
