package notify

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/go-resty/resty/v2"
)

const telegramAPIBaseURL = "https://api.telegram.org"

// MessageSender forwards a notification text to the external chat endpoint.
type MessageSender interface {
	Send(ctx context.Context, text string) error
}

// telegramSender delivers messages through the Telegram Bot API sendMessage
// method.
type telegramSender struct {
	client *resty.Client
	token  string
	chatID string
}

// NewTelegramSender builds a [MessageSender] for the bot token and chat id
// from cfg.
func NewTelegramSender(cfg config.Notifier) MessageSender {
	return &telegramSender{
		client: resty.New().SetBaseURL(telegramAPIBaseURL),
		token:  cfg.TelegramBotToken,
		chatID: cfg.TelegramChatID,
	}
}

func (s *telegramSender) Send(ctx context.Context, text string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chat_id": s.chatID,
			"text":    text,
		}).
		Get(fmt.Sprintf("/bot%s/sendMessage", s.token))
	if err != nil {
		return fmt.Errorf("calling telegram API: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode())
	}

	return nil
}
