package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plaintext-sports/internal/config"
	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/notifier"
	"github.com/pfrederiksen/plaintext-sports/internal/scraper"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
	"github.com/pfrederiksen/plaintext-sports/internal/teamcache"
)

// app holds what one command invocation needs. Resources are opened in
// setup and released in close.
type app struct {
	opts *options

	cfg     *config.Config
	log     *logger.Logger
	client  *fetch.Client
	leagues []sports.Config
	format  OutputFormat
	out     io.Writer
	notify  notifier.Notifier
	cache   *teamcache.Cache
}

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string) error

// runE wraps a command body with setup and teardown.
func (a *app) runE(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		// close also runs after a failed setup, releasing whatever it opened
		defer func() {
			if cerr := a.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		if err := a.setup(cmd); err != nil {
			return err
		}
		return fn(cmd.Context(), cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	format, err := ParseFormat(strings.ToLower(a.opts.format))
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.opts.configFile)
	if err != nil {
		return err
	}
	if a.opts.cache != "" {
		cfg.Cache.Backend = a.opts.cache
	}
	if a.opts.logFile != "" {
		cfg.Log.File = a.opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.Log.Level)
	if a.opts.verbose {
		level = logger.LevelDebug
	}
	if cfg.Log.File != "" {
		a.log = logger.NewRotating(level, cfg.Log.File, 10, 5)
	} else {
		a.log = logger.New(level, cmd.ErrOrStderr())
	}
	logger.SetDefault(a.log)

	a.out = cmd.OutOrStdout()
	a.client = fetch.New()
	a.leagues = sports.WithBaseURL(cfg.BaseURL)

	a.notify, err = a.buildNotifier(a.opts.notify)
	if err != nil {
		return err
	}

	a.log.Debug("Command starting", logger.Fields{
		"command":  cmd.CommandPath(),
		"base_url": cfg.BaseURL,
		"cache":    cfg.Cache.Backend,
	})
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
		a.cache = nil
	}
	if a.client != nil {
		errs = append(errs, a.client.Close())
		a.client = nil
	}
	if a.log != nil {
		a.log.Debug("Command finished", logger.Fields(logger.GetMetricsSnapshot()))
		errs = append(errs, a.log.Close())
		if logger.Default() == a.log {
			logger.SetDefault(logger.New(logger.LevelInfo, os.Stderr))
		}
		a.log = nil
	}
	return errors.Join(errs...)
}

func (a *app) league(slug string) (sports.Config, error) {
	return sports.LookupIn(a.leagues, slug)
}

func (a *app) scraper() *scraper.Scraper {
	return scraper.New(a.client, a.log)
}

// teamCache opens the configured store on first use.
func (a *app) teamCache(ctx context.Context) (*teamcache.Cache, error) {
	if a.cache != nil {
		return a.cache, nil
	}

	var (
		store teamcache.Store
		err   error
	)
	switch a.cfg.Cache.Backend {
	case config.BackendMemory:
		store = teamcache.NewMemoryStore()
	case config.BackendRedis:
		store, err = teamcache.NewRedisStore(ctx, a.cfg.Cache.RedisURL)
	case config.BackendDynamoDB:
		store, err = teamcache.NewDynamoStore(ctx, a.cfg.Cache.DynamoDBTable)
	default:
		store, err = teamcache.NewFileStore(a.cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s team cache: %w", a.cfg.Cache.Backend, err)
	}

	a.cache = teamcache.New(store)
	return a.cache, nil
}

// buildNotifier resolves notifier names against the configuration. No names
// means no notifier.
func (a *app) buildNotifier(names []string) (notifier.Notifier, error) {
	var multi notifier.Multi
	for _, name := range names {
		n, err := a.namedNotifier(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		multi = append(multi, n)
	}

	switch len(multi) {
	case 0:
		return nil, nil
	case 1:
		return multi[0], nil
	default:
		return multi, nil
	}
}

func (a *app) namedNotifier(name string) (notifier.Notifier, error) {
	switch name {
	case "dryrun":
		return notifier.NewDryRunNotifier(a.out), nil
	case "discord":
		if a.cfg.Discord.WebhookURL == "" {
			return nil, errors.New("discord notifier needs discord.webhook_url")
		}
		return notifier.NewDiscordNotifier(a.cfg.Discord.WebhookURL, a.cfg.Discord.Username)
	case "telegram":
		return notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID)
	case "twitter":
		return notifier.NewTwitterNotifier(a.twitterCredentials())
	default:
		return nil, fmt.Errorf("unknown notifier %q (want dryrun, discord, telegram, or twitter)", name)
	}
}

// configuredNotifiers names every destination the configuration has
// credentials for.
func (a *app) configuredNotifiers() []string {
	var names []string
	if a.cfg.Discord.WebhookURL != "" {
		names = append(names, "discord")
	}
	if a.cfg.Telegram.BotToken != "" && a.cfg.Telegram.ChatID != "" {
		names = append(names, "telegram")
	}
	if a.twitterCredentials().Complete() {
		names = append(names, "twitter")
	}
	return names
}

func (a *app) twitterCredentials() notifier.TwitterCredentials {
	return notifier.TwitterCredentials{
		APIKey:       a.cfg.Twitter.APIKey,
		APISecret:    a.cfg.Twitter.APISecret,
		AccessToken:  a.cfg.Twitter.AccessToken,
		AccessSecret: a.cfg.Twitter.AccessSecret,
	}
}

// emit writes embeds to stdout and hands them to the --notify destinations.
func (a *app) emit(ctx context.Context, command string, embeds []*discordgo.MessageEmbed) error {
	result := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		Command:     command,
		Embeds:      embeds,
	}
	if err := WriteOutput(a.out, result, a.format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if a.notify != nil {
		if err := a.notify.Notify(ctx, embeds); err != nil {
			return fmt.Errorf("delivering %s: %w", command, err)
		}
	}
	return nil
}

// fail emits a user-facing message and marks the run as having no result.
func (a *app) fail(ctx context.Context, command string, embed *discordgo.MessageEmbed) error {
	if err := a.emit(ctx, command, []*discordgo.MessageEmbed{embed}); err != nil {
		return err
	}
	return errNoResult
}
