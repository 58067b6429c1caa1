// Package cli implements the command-line interface for sportsbot.
//
// The cli package provides the Cobra command tree: one command per league
// (all days, a single day, a team's season, a connection test), plus weather,
// ski conditions, and a digest that pushes today's games to the configured
// notifiers. It coordinates the config, scraper, teams, and notifier packages
// and renders results as text or JSON.
package cli
