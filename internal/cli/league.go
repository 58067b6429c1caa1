package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/present"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
	"github.com/pfrederiksen/plaintext-sports/internal/teams"
)

// teamSuggestions is how many team names a not-found reply lists.
const teamSuggestions = 5

// leagueCmd builds "<slug>" with its day, team, and test subcommands.
func (a *app) leagueCmd(slug, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   slug,
		Short: fmt.Sprintf("Show %s games for every listed day", name),
		Args:  cobra.NoArgs,
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, _ []string) error {
			return a.showGames(ctx, slug)
		}),
	}

	for _, d := range dayCommands() {
		d := d // per-iteration copy; go.mod is go 1.21, which shares loop variables
		cmd.AddCommand(&cobra.Command{
			Use:   d.name,
			Short: fmt.Sprintf("Show %s games for %s", name, d.label),
			Args:  cobra.NoArgs,
			RunE: a.runE(func(ctx context.Context, _ *cobra.Command, _ []string) error {
				return a.showDay(ctx, slug, d.label)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "team <name> [year]",
		Short: fmt.Sprintf("Show a %s team's season schedule", name),
		Long: fmt.Sprintf(`Show a %s team's season schedule.
The name may be a nickname, city, or full name and is matched loosely.
A trailing four-digit year picks the season; the default is the current one.`, name),
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			team, year := teamArgs(args)
			return a.showTeam(ctx, slug, team, year)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: fmt.Sprintf("Check that the %s page is reachable", name),
		Args:  cobra.NoArgs,
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, _ []string) error {
			return a.testConnection(ctx, slug)
		}),
	})

	return cmd
}

// teamArgs splits "kansas city chiefs 2024" into a name and year. Year is 0
// when no trailing year was given.
func teamArgs(args []string) (string, int) {
	if n := len(args); n > 1 {
		last := args[n-1]
		if len(last) == 4 {
			if year, err := strconv.Atoi(last); err == nil {
				return strings.Join(args[:n-1], " "), year
			}
		}
	}
	return strings.Join(args, " "), 0
}

func (a *app) showGames(ctx context.Context, slug string) error {
	cfg, err := a.league(slug)
	if err != nil {
		return err
	}

	res := a.scraper().FetchGames(ctx, cfg)
	if !res.OK() {
		return a.fail(ctx, slug, present.MessageEmbed(cfg, res.Failure.Reason))
	}

	embeds := present.DayEmbeds(cfg, res.Games, res.Round)
	if len(embeds) == 0 {
		return a.fail(ctx, slug, present.MessageEmbed(cfg, fmt.Sprintf("Could not fetch %s game information.", cfg.Name)))
	}
	return a.emit(ctx, slug, embeds)
}

func (a *app) showDay(ctx context.Context, slug, day string) error {
	cfg, err := a.league(slug)
	if err != nil {
		return err
	}

	command := slug + " " + strings.ToLower(day)
	res := a.scraper().FetchGames(ctx, cfg)
	if !res.OK() {
		return a.fail(ctx, command, present.MessageEmbed(cfg, res.Failure.Reason))
	}

	games := res.Games.Games(day)
	if len(games) == 0 {
		return a.fail(ctx, command, present.MessageEmbed(cfg, fmt.Sprintf("No %s games scheduled for %s.", cfg.Name, day)))
	}
	return a.emit(ctx, command, []*discordgo.MessageEmbed{present.DayEmbed(cfg, day, games, res.Round)})
}

func (a *app) showTeam(ctx context.Context, slug, name string, year int) error {
	cfg, err := a.league(slug)
	if err != nil {
		return err
	}
	command := slug + " team"
	reply := func(msg string) error {
		return a.fail(ctx, command, present.MessageEmbed(cfg, msg))
	}

	cache, err := a.teamCache(ctx)
	if err != nil {
		return err
	}
	resolver := teams.NewResolver(a.client, cache, a.log)

	if year == 0 {
		year = resolver.SeasonYear(cfg)
	}
	if err := resolver.CheckYear(cfg, year); err != nil {
		var ye *teams.YearError
		if errors.As(err, &ye) {
			return reply(ye.Error())
		}
		return err
	}

	list, err := resolver.FetchTeamList(ctx, cfg, year)
	if err != nil || len(list) == 0 {
		if err != nil {
			a.log.Warn("Team list unavailable", logger.Fields{"sport": slug, "year": year, "error": err.Error()})
		}
		return reply(fmt.Sprintf("Could not fetch team list for %d.", year))
	}

	teamSlug, fullName, ok := teams.FindTeamSlug(name, list)
	if !ok {
		sample := make([]string, 0, teamSuggestions)
		for _, t := range list[:min(len(list), teamSuggestions)] {
			sample = append(sample, t.Name)
		}
		return reply(fmt.Sprintf("Team '%s' not found. Try: %s, etc.", name, strings.Join(sample, ", ")))
	}

	sched, err := a.scraper().FetchTeamSchedule(ctx, cfg, year, teamSlug)
	if err != nil {
		a.log.Warn("Team schedule unavailable", logger.Fields{"sport": slug, "team": teamSlug, "year": year, "error": err.Error()})
		return reply(fmt.Sprintf("Could not fetch schedule for %s (%d).", fullName, year))
	}

	return a.emit(ctx, command, []*discordgo.MessageEmbed{present.TeamScheduleEmbed(cfg, sched, year)})
}

func (a *app) testConnection(ctx context.Context, slug string) error {
	cfg, err := a.league(slug)
	if err != nil {
		return err
	}

	report := a.scraper().TestConnection(ctx, cfg)
	embed := present.ConnectionEmbed(cfg, report.URL, report.Status, report.ContentLength, report.Err)
	if !report.OK {
		return a.fail(ctx, slug+" test", embed)
	}
	return a.emit(ctx, slug+" test", []*discordgo.MessageEmbed{embed})
}

// leagueNames lists the built-in league slugs for help text.
func leagueNames() string {
	return strings.Join(sports.Slugs(), ", ")
}
