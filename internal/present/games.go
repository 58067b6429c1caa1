package present

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// now stamps embeds; tests pin it.
var now = time.Now

// DayEmbed renders one day's games.
func DayEmbed(cfg sports.Config, day string, games []sports.GameRecord, round string) *discordgo.MessageEmbed {
	embed := newEmbed(fmt.Sprintf("%s Games - %s", cfg.Name, day), cfg.Color)
	embed.Description = "**" + round + "**"

	lines := make([]string, 0, len(games))
	for _, g := range games {
		lines = append(lines, GameLine(g))
	}
	if len(lines) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Games",
			Value: Truncate(strings.Join(lines, "\n\n"), FieldLimit),
		})
	}
	return embed
}

// DayEmbeds renders every day in the bucket in display order.
func DayEmbeds(cfg sports.Config, games *sports.DayBucket, round string) []*discordgo.MessageEmbed {
	var embeds []*discordgo.MessageEmbed
	for _, day := range OrderDays(games.Days()) {
		if g := games.Games(day); len(g) > 0 {
			embeds = append(embeds, DayEmbed(cfg, day, g, round))
		}
	}
	return embeds
}

// GameLine renders one game as a bold status line over "away @ home".
func GameLine(g sports.GameRecord) string {
	var away, home string
	if g.HasScores() {
		away = scoreText(g.AwayScore)
		home = scoreText(g.HomeScore)
	} else {
		away = FormatTeamInfo(g.Away)
		home = FormatTeamInfo(g.Home)
	}

	line := fmt.Sprintf("**%s**\n%s @ %s", g.Status, away, home)
	if g.Network != "" {
		line += " - " + g.Network
	}
	return line
}

func scoreText(s *sports.Score) string {
	return "**" + s.Team + "** " + strconv.Itoa(s.Points)
}

// TeamScheduleEmbed renders a team's season: playoffs, then the regular
// season split across continuation fields, then preseason.
func TeamScheduleEmbed(cfg sports.Config, sched sports.TeamSchedule, year int) *discordgo.MessageEmbed {
	name := sched.TeamName
	if name == "" {
		name = "Unknown Team"
	}
	embed := newEmbed(fmt.Sprintf("%s - %d Season", name, year), cfg.Color)
	if sched.Record != "" {
		embed.Description = "**" + sched.Record + "**"
	}

	if len(sched.Playoffs) > 0 {
		embed.Fields = append(embed.Fields, codeField("Playoffs", sched.Playoffs))
	}
	if len(sched.RegularSeason) > 0 {
		for i, chunk := range SplitChunks(strings.Join(sched.RegularSeason, "\n"), ChunkLimit) {
			field := "Regular Season"
			if i > 0 {
				field += " (cont.)"
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  field,
				Value: CodeBlock(chunk, FieldLimit),
			})
		}
	}
	if len(sched.Preseason) > 0 {
		embed.Fields = append(embed.Fields, codeField("Preseason", sched.Preseason))
	}
	return embed
}

func codeField(name string, lines []string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:  name,
		Value: CodeBlock(strings.Join(lines, "\n"), FieldLimit),
	}
}

// ConnectionEmbed reports a reachability probe.
func ConnectionEmbed(cfg sports.Config, url string, status, contentLength int, err error) *discordgo.MessageEmbed {
	embed := newEmbed(cfg.Name+" Connection Test", cfg.Color)
	if err != nil {
		embed.Description = "Connection failed: " + err.Error()
		return embed
	}
	embed.Description = fmt.Sprintf("Status Code: %d\nContent Length: %d bytes\nURL: %s", status, contentLength, url)
	return embed
}

// MessageEmbed wraps a plain message, such as a failure reason, for
// delivery through notifiers.
func MessageEmbed(cfg sports.Config, message string) *discordgo.MessageEmbed {
	embed := newEmbed(cfg.Name, cfg.Color)
	embed.Description = message
	return embed
}

// NoticeEmbed wraps a plain message for commands outside any league.
func NoticeEmbed(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       title,
		Description: message,
		Timestamp:   now().UTC().Format(time.RFC3339),
	}
}

func newEmbed(title string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Type:      discordgo.EmbedTypeRich,
		Title:     title,
		Color:     color,
		Timestamp: now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: Footer},
	}
}
