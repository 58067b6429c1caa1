// Package sports defines the shared domain types for schedule scraping and the
// registry of supported leagues.
//
// GameRecord, DayBucket, TeamRef and TeamSchedule are produced by the scraper
// and teams packages and consumed by the presentation layer. Config describes
// one league on plaintextsports.com: its display names, the names of the other
// leagues that end its section on the front page, and when its season rolls over.
package sports
