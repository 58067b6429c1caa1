package notifier

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MaxWebhookEmbeds is the number of embeds Discord accepts per webhook message.
const MaxWebhookEmbeds = 10

// WebhookExecutor is the subset of a discordgo session the notifier uses.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts embeds through a channel webhook.
type DiscordNotifier struct {
	session  WebhookExecutor
	id       string
	token    string
	username string
}

// ParseWebhookURL splits a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token} into its id and token.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing webhook URL: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook URL %q has no /webhooks/{id}/{token} path", raw)
}

// NewDiscordNotifier creates a notifier for the given webhook URL.
func NewDiscordNotifier(webhookURL, username string) (*DiscordNotifier, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return NewDiscordNotifierWithSession(session, webhookURL, username)
}

// NewDiscordNotifierWithSession uses an existing session or fake.
func NewDiscordNotifierWithSession(session WebhookExecutor, webhookURL, username string) (*DiscordNotifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{session: session, id: id, token: token, username: username}, nil
}

// Notify sends the embeds in batches of MaxWebhookEmbeds.
func (n *DiscordNotifier) Notify(ctx context.Context, embeds []*discordgo.MessageEmbed) error {
	for start := 0; start < len(embeds); start += MaxWebhookEmbeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+MaxWebhookEmbeds, len(embeds))
		params := &discordgo.WebhookParams{
			Username: n.username,
			Embeds:   embeds[start:end],
		}
		if _, err := n.session.WebhookExecute(n.id, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("executing webhook (embeds %d-%d): %w", start+1, end, err)
		}
	}
	return nil
}
