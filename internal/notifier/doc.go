// Package notifier delivers sports embeds to chat and social destinations.
//
// Every destination implements Notifier over discordgo embeds: a Discord
// channel webhook, a Telegram chat, a Twitter account (one tweet per embed,
// spaced to respect rate limits), or a dry run that prints plain text. Multi
// fans out to several destinations at once.
package notifier
