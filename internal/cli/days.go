package cli

import (
	"strings"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// weekdays are the per-day subcommands after today and tomorrow.
var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type dayCommand struct {
	name  string // subcommand, "monday"
	label string // day label the site prints, "Monday"
}

// dayCommands lists the per-day subcommands in display order.
func dayCommands() []dayCommand {
	out := []dayCommand{
		{"today", sports.Today},
		{"tomorrow", sports.Tomorrow},
	}
	for _, d := range weekdays {
		out = append(out, dayCommand{strings.ToLower(d), d})
	}
	return out
}
