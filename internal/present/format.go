package present

import (
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

const (
	// FieldLimit is the longest value an embed field may carry.
	FieldLimit = 1024

	// ChunkLimit sizes continuation chunks so each fits FieldLimit once fenced.
	ChunkLimit = FieldLimit - fenceOverhead

	// Footer credits the data source on every league embed.
	Footer = "Data from plaintextsports.com"

	ellipsis      = "..."
	fence         = "```"
	fenceOverhead = len(fence)*2 + 2
)

// FormatTeamInfo emphasizes the team in a box line.
//
//	"5 LAR 12-5" -> "**LAR** *(12-5)*"
//	"DAL 12-5"   -> "**DAL** *(12-5)*"
//	"KC 15"      -> "**KC** 15"
//
// Any other shape is returned unchanged.
func FormatTeamInfo(s string) string {
	parts := strings.Fields(s)
	switch {
	case len(parts) == 3 && isDigits(parts[0]):
		return "**" + parts[1] + "** *(" + parts[2] + ")*"
	case len(parts) == 2 && strings.Contains(parts[1], "-"):
		return "**" + parts[0] + "** *(" + parts[1] + ")*"
	case len(parts) == 2 && isDigits(parts[1]):
		return "**" + parts[0] + "** " + parts[1]
	}
	return s
}

// Truncate cuts s to at most n characters, ending in "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= len(ellipsis) {
		return string(r[:n])
	}
	return string(r[:n-len(ellipsis)]) + ellipsis
}

// SplitChunks splits text at line boundaries into chunks of at most max
// characters. A single line longer than max is split mid-line. No chunk is
// empty unless text is.
func SplitChunks(text string, max int) []string {
	if max <= 0 {
		return []string{text}
	}

	var chunks []string
	var current []string
	size := 0

	for _, line := range strings.Split(text, "\n") {
		split := false
		for utf8.RuneCountInString(line) > max {
			split = true
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, "\n"))
				current, size = nil, 0
			}
			r := []rune(line)
			chunks = append(chunks, string(r[:max]))
			line = string(r[max:])
		}
		if split && line == "" {
			continue
		}

		n := utf8.RuneCountInString(line) + 1
		if size+n > max+1 && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current, size = nil, 0
		}
		current = append(current, line)
		size += n
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}

// dayOrder is the display order of day labels.
var dayOrder = []string{
	sports.Today, sports.Tomorrow,
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// OrderDays sorts day labels into display order. Labels outside the known
// set follow in their original order.
func OrderDays(days []string) []string {
	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d] = true
	}

	out := make([]string, 0, len(days))
	known := make(map[string]bool, len(dayOrder))
	for _, d := range dayOrder {
		known[d] = true
		if present[d] {
			out = append(out, d)
		}
	}
	for _, d := range days {
		if !known[d] {
			out = append(out, d)
		}
	}
	return out
}

// CodeBlock wraps s in a fenced block, truncating s so the block fits in limit.
func CodeBlock(s string, limit int) string {
	return fence + "\n" + Truncate(s, limit-fenceOverhead) + "\n" + fence
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
