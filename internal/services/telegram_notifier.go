package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"personalsite/internal/config"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier mirrors contact submissions into a Telegram chat.
type TelegramNotifier struct {
	bot    telegramAPI
	chatID int64
	log    *slog.Logger
}

// NewTelegramNotifier returns (nil, nil) when Telegram is not configured.
func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return newTelegramNotifier(bot, cfg.ChatID), nil
}

func newTelegramNotifier(bot telegramAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		log:    slog.Default().With("component", "telegram"),
	}
}

func (t *TelegramNotifier) NotifyContact(_ context.Context, d ContactFormEmailData) bool {
	text := fmt.Sprintf(
		"📬 <b>New contact message</b>\n"+
			"👤 %s\n"+
			"✉️ %s\n"+
			"🕒 %s\n\n"+
			"%s",
		html.EscapeString(d.Name),
		html.EscapeString(d.Email),
		html.EscapeString(d.Timestamp),
		html.EscapeString(d.Message),
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.log.Error("telegram send failed", "chat_id", t.chatID, "error", err)
		return false
	}
	return true
}
