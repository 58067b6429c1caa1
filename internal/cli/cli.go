package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNoResult = 2
)

// Version is reported by --version.
var Version = "dev"

// errNoResult marks a command that ran and reported a user-facing failure,
// such as no games for the requested day. The message was already written.
var errNoResult = errors.New("no result")

type options struct {
	configFile string
	format     string
	notify     []string
	cache      string
	verbose    bool
	logFile    string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   "sportsbot",
		Short: "Game schedules, team seasons, weather, and ski conditions",
		Long: `A CLI for plaintextsports.com schedules.
Shows each league's listed games by day, a team's full season, a weather
forecast from wttr.in, and Bristol Mountain lift and trail status. Results can
also be delivered to Discord, Telegram, or Twitter.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default ~/.config/sportsbot/config.yaml)")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flags.StringSliceVar(&opts.notify, "notify", nil, "Also deliver to: dryrun, discord, telegram, twitter")
	flags.StringVar(&opts.cache, "cache", "", "Team cache backend: file, memory, redis, or dynamodb")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	for _, l := range sports.All() {
		cmd.AddCommand(a.leagueCmd(l.Slug, l.Name))
	}
	cmd.AddCommand(a.weatherCmd(), a.bristolCmd(), a.digestCmd())

	return cmd
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errNoResult):
		os.Exit(ExitNoResult)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
