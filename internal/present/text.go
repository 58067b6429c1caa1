package present

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

var markdownStripper = strings.NewReplacer(
	fence+"\n", "",
	"\n"+fence, "",
	fence, "",
	"**", "",
	"~~", "",
	"*(", "(",
	")*", ")",
)

// StripMarkdown removes the emphasis, strike, and fence markers the embed
// builders emit.
func StripMarkdown(s string) string {
	return markdownStripper.Replace(s)
}

// Text renders an embed as plain text: title, description, then each field
// as a heading over its value, then the footer.
func Text(embed *discordgo.MessageEmbed) string {
	var b strings.Builder
	if embed.Title != "" {
		b.WriteString(embed.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len([]rune(embed.Title))))
		b.WriteString("\n")
	}
	if embed.Description != "" {
		b.WriteString(StripMarkdown(embed.Description))
		b.WriteString("\n")
	}
	for _, f := range embed.Fields {
		b.WriteString("\n")
		b.WriteString(StripMarkdown(f.Name))
		b.WriteString("\n")
		b.WriteString(StripMarkdown(f.Value))
		b.WriteString("\n")
	}
	if embed.Footer != nil && embed.Footer.Text != "" {
		b.WriteString("\n")
		b.WriteString(embed.Footer.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders an embed compactly for length-limited channels: title and
// field values only, trimmed to limit characters.
func Summary(embed *discordgo.MessageEmbed, limit int) string {
	parts := []string{embed.Title}
	for _, f := range embed.Fields {
		parts = append(parts, StripMarkdown(f.Value))
	}
	if len(embed.Fields) == 0 && embed.Description != "" {
		parts = append(parts, StripMarkdown(embed.Description))
	}
	return Truncate(strings.TrimSpace(strings.Join(parts, "\n\n")), limit)
}
