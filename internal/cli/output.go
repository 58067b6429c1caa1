package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/present"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
}

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Command     string                    `json:"command"`
	Embeds      []*discordgo.MessageEmbed `json:"embeds"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs each embed as plain text, separated by a blank line
func writeText(w io.Writer, result *OutputResult) error {
	for i, embed := range result.Embeds {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, present.Text(embed)); err != nil {
			return err
		}
	}
	return nil
}
