package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Notifier delivers rendered embeds to one destination.
type Notifier interface {
	// Notify posts the embeds in order.
	Notify(ctx context.Context, embeds []*discordgo.MessageEmbed) error
}

// Multi fans out to every notifier. All notifiers run even when an earlier
// one fails; the failures are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, embeds []*discordgo.MessageEmbed) error {
	var errs []error
	for i, n := range m {
		if err := n.Notify(ctx, embeds); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d (%T): %w", i, n, err))
		}
	}
	return errors.Join(errs...)
}
