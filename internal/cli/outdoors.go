package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plaintext-sports/internal/conditions"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/present"
	"github.com/pfrederiksen/plaintext-sports/internal/weather"
)

func (a *app) weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <location>",
		Short: "Show a wttr.in forecast for a location",
		Long: `Show a wttr.in forecast for a location.
A bare place name with no comma is retried as "<name>,NY" when it does not
resolve on its own.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, args []string) error {
			return a.showWeather(ctx, strings.Join(args, " "))
		}),
	}
}

func (a *app) bristolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bristol",
		Short: "Show Bristol Mountain lift and trail status",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, _ []string) error {
			return a.showConditions(ctx)
		}),
	}
}

func (a *app) showWeather(ctx context.Context, location string) error {
	client := weather.New(a.client, a.log)
	if a.cfg.WeatherURL != "" {
		client = weather.NewWithBaseURL(a.client, a.cfg.WeatherURL, a.log)
	}

	report, err := client.Lookup(ctx, location)
	if err != nil {
		a.log.Error("Weather lookup failed", logger.Fields{"location": location}, err)
		msg := fmt.Sprintf("Could not fetch weather for '%s'. Please check the location and try again.", location)
		return a.fail(ctx, "weather", present.NoticeEmbed("Weather", msg))
	}
	return a.emit(ctx, "weather", []*discordgo.MessageEmbed{present.WeatherEmbed(report)})
}

func (a *app) showConditions(ctx context.Context) error {
	client := conditions.New(a.client, a.log)
	if a.cfg.ConditionsURL != "" {
		client = conditions.NewWithURL(a.client, a.cfg.ConditionsURL, a.log)
	}

	report, err := client.Fetch(ctx)
	if err != nil {
		a.log.Error("Conditions fetch failed", logger.Fields{"url": client.URL()}, err)
		msg := "Could not fetch Bristol Mountain conditions. Please try again later."
		return a.fail(ctx, "bristol", present.NoticeEmbed("Bristol Mountain", msg))
	}
	return a.emit(ctx, "bristol", present.ConditionsEmbeds(report, client.URL()))
}
