package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/mixelka/codefetch/pkg/models"
)

// Notifier pushes a recovered verification code to a Telegram chat. The bot
// is used for one-shot sends only and never polls for updates.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
}

// New creates a new notifier
func New(token string, chatID int64) (*Notifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Notifier{bot: b, chatID: chatID}, nil
}

// SendResult sends the recovered code to the configured chat
func (n *Notifier) SendResult(ctx context.Context, result *models.VerificationResult) error {
	text := fmt.Sprintf("Verification code: %s\nFrom: %s <%s>\nSubject: %s",
		result.Code, result.FromName, result.FromAddr, result.Subject)

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
