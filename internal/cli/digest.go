package cli

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/present"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

func (a *app) digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <sport>",
		Short: "Send today's games to the configured notifiers",
		Long: fmt.Sprintf(`Send today's games for one league (%s) to every notifier named by
--notify, or else to every notifier the configuration has credentials for.
With neither, the digest is printed as a dry run.`, leagueNames()),
		Args:      cobra.ExactArgs(1),
		ValidArgs: sports.Slugs(),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			return a.sendDigest(ctx, args[0])
		}),
	}
}

// digestEmbeds renders today's games, or a message saying why there are none.
func (a *app) digestEmbeds(ctx context.Context, cfg sports.Config) []*discordgo.MessageEmbed {
	res := a.scraper().FetchGames(ctx, cfg)
	if !res.OK() {
		return []*discordgo.MessageEmbed{present.MessageEmbed(cfg, res.Failure.Reason)}
	}
	games := res.Games.Games(sports.Today)
	if len(games) == 0 {
		msg := fmt.Sprintf("No %s games scheduled for %s.", cfg.Name, sports.Today)
		return []*discordgo.MessageEmbed{present.MessageEmbed(cfg, msg)}
	}
	return []*discordgo.MessageEmbed{present.DayEmbed(cfg, sports.Today, games, res.Round)}
}

func (a *app) sendDigest(ctx context.Context, slug string) error {
	cfg, err := a.league(slug)
	if err != nil {
		return err
	}

	names := a.opts.notify
	if len(names) == 0 {
		names = a.configuredNotifiers()
	}
	if len(names) == 0 {
		names = []string{"dryrun"}
	}
	n, err := a.buildNotifier(names)
	if err != nil {
		return err
	}

	embeds := a.digestEmbeds(ctx, cfg)
	if err := n.Notify(ctx, embeds); err != nil {
		return fmt.Errorf("sending %s digest: %w", cfg.Name, err)
	}

	logger.IncrCounter("digest." + slug)
	a.log.Info("Digest sent", logger.Fields{
		"sport":     slug,
		"embeds":    len(embeds),
		"notifiers": names,
	})
	return nil
}
