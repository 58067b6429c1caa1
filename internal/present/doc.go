// Package present renders schedules, team seasons, forecasts, and ski
// conditions as Discord embeds, and embeds as plain text.
//
// Every field value stays within FieldLimit characters. Long team seasons are
// split at line boundaries into continuation fields; everything else is
// truncated with an ellipsis.
package present
