package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/telegram"
)

// MessageSender sends one HTML message.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier sends embeds as Telegram HTML messages.
type TelegramNotifier struct {
	client MessageSender
}

// NewTelegramNotifier creates a notifier for the given bot and chat.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	return NewTelegramNotifierWithSender(client), nil
}

// NewTelegramNotifierWithSender wraps an existing sender.
func NewTelegramNotifierWithSender(client MessageSender) *TelegramNotifier {
	return &TelegramNotifier{client: client}
}

// Notify implements Notifier.
func (n *TelegramNotifier) Notify(ctx context.Context, embeds []*discordgo.MessageEmbed) error {
	for i, msg := range telegram.FormatEmbeds(embeds) {
		if err := n.client.SendMessage(ctx, msg); err != nil {
			return fmt.Errorf("sending telegram message %d: %w", i+1, err)
		}
	}
	return nil
}
