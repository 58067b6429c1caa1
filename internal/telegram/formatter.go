package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/present"
)

// MaxMessageLength is the Bot API limit for one message.
const MaxMessageLength = 4096

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)
	italicPattern = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// FormatInline converts embed markdown to Telegram HTML. Text is escaped
// before any tags are added, so markup in scraped values is never interpreted.
func FormatInline(s string) string {
	parts := strings.Split(s, "```")
	var b strings.Builder
	for i, p := range parts {
		if i%2 == 1 {
			b.WriteString("<pre>")
			b.WriteString(html.EscapeString(strings.Trim(p, "\n")))
			b.WriteString("</pre>")
			continue
		}
		p = html.EscapeString(p)
		p = boldPattern.ReplaceAllString(p, "<b>$1</b>")
		p = strikePattern.ReplaceAllString(p, "<s>$1</s>")
		p = italicPattern.ReplaceAllString(p, "<i>$1</i>")
		b.WriteString(p)
	}
	return b.String()
}

type block struct {
	html  string
	plain string
}

// FormatEmbed renders an embed as one or more HTML messages, each within
// MaxMessageLength. Blocks (header, each field, footer) are never split;
// a block that cannot fit on its own is sent as truncated plain text.
func FormatEmbed(embed *discordgo.MessageEmbed) []string {
	var blocks []block

	var header, plain []string
	if embed.Title != "" {
		header = append(header, "<b>"+html.EscapeString(embed.Title)+"</b>")
		plain = append(plain, embed.Title)
	}
	if embed.Description != "" {
		header = append(header, FormatInline(embed.Description))
		plain = append(plain, present.StripMarkdown(embed.Description))
	}
	if len(header) > 0 {
		blocks = append(blocks, block{strings.Join(header, "\n"), strings.Join(plain, "\n")})
	}

	for _, f := range embed.Fields {
		blocks = append(blocks, block{
			html:  "<b>" + html.EscapeString(f.Name) + "</b>\n" + FormatInline(f.Value),
			plain: f.Name + "\n" + present.StripMarkdown(f.Value),
		})
	}

	if embed.Footer != nil && embed.Footer.Text != "" {
		blocks = append(blocks, block{"<i>" + html.EscapeString(embed.Footer.Text) + "</i>", embed.Footer.Text})
	}

	return pack(blocks, MaxMessageLength)
}

// FormatEmbeds renders each embed in turn. Every embed starts a new message.
func FormatEmbeds(embeds []*discordgo.MessageEmbed) []string {
	var out []string
	for _, e := range embeds {
		out = append(out, FormatEmbed(e)...)
	}
	return out
}

func pack(blocks []block, limit int) []string {
	var (
		messages []string
		current  string
	)
	for _, b := range blocks {
		text := b.html
		if utf8.RuneCountInString(text) > limit {
			text = escapeTruncate(b.plain, limit)
		}
		if current == "" {
			current = text
			continue
		}
		if utf8.RuneCountInString(current)+2+utf8.RuneCountInString(text) > limit {
			messages = append(messages, current)
			current = text
			continue
		}
		current += "\n\n" + text
	}
	if current != "" {
		messages = append(messages, current)
	}
	return messages
}

// escapeTruncate escapes s and cuts it so the escaped form, including the
// trailing "...", stays within limit characters.
func escapeTruncate(s string, limit int) string {
	if full := html.EscapeString(s); utf8.RuneCountInString(full) <= limit {
		return full
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		esc := html.EscapeString(string(r))
		w := utf8.RuneCountInString(esc)
		if n+w > limit-3 {
			b.WriteString("...")
			return b.String()
		}
		b.WriteString(esc)
		n += w
	}
	return b.String()
}
