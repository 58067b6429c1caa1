package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/conditions"
	"github.com/pfrederiksen/plaintext-sports/internal/weather"
)

const (
	conditionsColor  = 0x0066CC
	conditionsFooter = "Data from bristolmountain.com"

	maxOpenTrails   = 15
	maxClosedTrails = 10
)

// WeatherMessage is the chat body for a forecast: the text in a code block.
func WeatherMessage(r weather.Report) string {
	return fence + "\n" + r.Text + "\n" + fence
}

// WeatherEmbed carries a forecast for embed-only channels.
func WeatherEmbed(r weather.Report) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       "Weather - " + r.Location,
		Description: WeatherMessage(r),
		Timestamp:   now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Data from wttr.in"},
	}
}

// ConditionsEmbeds renders lift status and trail status as two embeds.
func ConditionsEmbeds(r conditions.Report, pageURL string) []*discordgo.MessageEmbed {
	lifts := &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Title: "Bristol Mountain - Ski Lift Status",
		Color: conditionsColor,
		URL:   pageURL,
	}
	if len(r.Lifts) > 0 {
		lines := make([]string, 0, len(r.Lifts))
		for _, l := range r.Lifts {
			icon := "❌"
			if l.Open() {
				icon = "✅"
			}
			lines = append(lines, fmt.Sprintf("%s **%s** - %s", icon, l.Name, l.Status))
		}
		lifts.Fields = append(lifts.Fields, &discordgo.MessageEmbedField{
			Name:  "Lifts",
			Value: Truncate(strings.Join(lines, "\n"), FieldLimit),
		})
	}

	trails := &discordgo.MessageEmbed{
		Type:   discordgo.EmbedTypeRich,
		Title:  "Bristol Mountain - Trail Conditions",
		Color:  conditionsColor,
		URL:    pageURL,
		Footer: &discordgo.MessageEmbedFooter{Text: conditionsFooter},
	}
	if open := r.OpenTrails(); len(open) > 0 {
		lines := make([]string, 0, maxOpenTrails)
		for _, t := range open[:min(len(open), maxOpenTrails)] {
			lines = append(lines, fmt.Sprintf("**%s** %s\n└ %s", t.Name, t.Difficulty, t.Conditions))
		}
		trails.Fields = append(trails.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Open Trails (%d)", len(open)),
			Value: Truncate(strings.Join(lines, "\n"), FieldLimit),
		})
	}
	if closed := r.ClosedTrails(); len(closed) > 0 {
		names := make([]string, 0, maxClosedTrails)
		for _, t := range closed[:min(len(closed), maxClosedTrails)] {
			names = append(names, "~~"+t.Name+"~~")
		}
		trails.Fields = append(trails.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Closed Trails (%d)", len(closed)),
			Value: Truncate(strings.Join(names, ", "), FieldLimit),
		})
	}

	return []*discordgo.MessageEmbed{lifts, trails}
}
