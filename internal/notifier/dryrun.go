package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/present"
)

// DryRunNotifier prints what would be posted without posting it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out. A nil writer
// means stdout.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints each embed as plain text
func (n *DryRunNotifier) Notify(_ context.Context, embeds []*discordgo.MessageEmbed) error {
	for i, embed := range embeds {
		text := present.Text(embed)
		if _, err := fmt.Fprintf(n.out, "--- Message %d/%d ---\n%s\n", i+1, len(embeds), text); err != nil {
			return fmt.Errorf("writing dry run output: %w", err)
		}
	}
	return nil
}
