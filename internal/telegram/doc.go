// Package telegram delivers sports embeds through the Telegram Bot API.
//
// Embeds are rendered to Telegram's HTML parse mode: bold, italic, and strike
// markers become tags and code fences become <pre> blocks. Long embeds are
// packed into several messages under the 4096 character limit. Requests are
// plain JSON POSTs over net/http.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
