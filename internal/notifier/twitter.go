package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/plaintext-sports/internal/present"
)

const (
	// TweetLimit is the maximum tweet length.
	TweetLimit = 280
	tweetGap   = 2 * time.Second
)

// TwitterCredentials holds the OAuth1 user-context keys.
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether every key is set.
func (c TwitterCredentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// StatusUpdater is the subset of the twitter statuses service the notifier uses.
type StatusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts one tweet per embed
type TwitterNotifier struct {
	statuses StatusUpdater
	gap      time.Duration
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials.
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return NewTwitterNotifierWithStatuses(client.Statuses), nil
}

// NewTwitterNotifierWithStatuses wraps an existing statuses service.
func NewTwitterNotifierWithStatuses(statuses StatusUpdater) *TwitterNotifier {
	return &TwitterNotifier{statuses: statuses, gap: tweetGap}
}

// Notify posts a tweet for each embed, waiting between tweets.
func (n *TwitterNotifier) Notify(ctx context.Context, embeds []*discordgo.MessageEmbed) error {
	for i, embed := range embeds {
		tweet := formatTweet(embed)

		if _, _, err := n.statuses.Update(tweet, nil); err != nil {
			return fmt.Errorf("failed to post tweet for %q: %w", embed.Title, err)
		}

		if i < len(embeds)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.gap):
			}
		}
	}

	return nil
}

// formatTweet renders an embed compactly within the tweet limit.
func formatTweet(embed *discordgo.MessageEmbed) string {
	return present.Summary(embed, TweetLimit)
}
