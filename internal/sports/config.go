package sports

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// BaseURL is the schedule host all leagues are scraped from.
	BaseURL = "https://plaintextsports.com"

	// DefaultGameCap bounds how many games one front-page pass collects.
	DefaultGameCap = 30

	// FirstSeasonYear is the oldest season the site publishes team pages for.
	FirstSeasonYear = 2021
)

// extraStopNames are leagues the site lists that have no command of their own.
var extraStopNames = []string{"Major League Soccer"}

// Config describes one league
type Config struct {
	Name             string   // "NFL"
	Slug             string   // "nfl", also the URL path segment
	FullName         string   // "National Football League"
	Color            int      // embed color
	StopList         []string // full names that end this league's front-page section
	SeasonStartMonth time.Month
	BaseURL          string
	GameCap          int
}

var builtin = []Config{
	{Name: "NFL", Slug: "nfl", FullName: "National Football League", Color: 0x013369, SeasonStartMonth: time.June},
	{Name: "NBA", Slug: "nba", FullName: "National Basketball Association", Color: 0x1D428A, SeasonStartMonth: time.October},
	{Name: "NHL", Slug: "nhl", FullName: "National Hockey League", Color: 0x002D62, SeasonStartMonth: time.September},
	{Name: "MLB", Slug: "mlb", FullName: "Major League Baseball", Color: 0x002D72, SeasonStartMonth: time.March},
}

// All returns the built-in leagues with stop-lists and defaults filled in.
func All() []Config {
	return WithBaseURL(BaseURL)
}

// WithBaseURL returns the built-in leagues pointed at base instead of the public host.
func WithBaseURL(base string) []Config {
	base = strings.TrimRight(base, "/")
	out := make([]Config, 0, len(builtin))
	for _, c := range builtin {
		c.BaseURL = base
		c.GameCap = DefaultGameCap
		c.StopList = stopListFor(c.FullName)
		out = append(out, c)
	}
	return out
}

// Lookup finds a built-in league by slug or name, case-insensitively.
func Lookup(name string) (Config, error) {
	return LookupIn(All(), name)
}

// LookupIn finds a league by slug or name in configs.
func LookupIn(configs []Config, name string) (Config, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range configs {
		if c.Slug == name || strings.ToLower(c.Name) == name {
			return c, nil
		}
	}
	return Config{}, fmt.Errorf("unknown sport: %q", name)
}

// Slugs returns the built-in league slugs, sorted.
func Slugs() []string {
	out := make([]string, 0, len(builtin))
	for _, c := range builtin {
		out = append(out, c.Slug)
	}
	sort.Strings(out)
	return out
}

func stopListFor(fullName string) []string {
	var stops []string
	for _, c := range builtin {
		if c.FullName != fullName {
			stops = append(stops, c.FullName)
		}
	}
	return append(stops, extraStopNames...)
}

// CurrentSeasonYear returns the season year in effect at now. A season that
// starts in October 2024 is the 2024 season until the following October.
func (c Config) CurrentSeasonYear(now time.Time) int {
	if now.Month() >= c.SeasonStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}

// ScheduleURL is the league's front-page listing.
func (c Config) ScheduleURL() string {
	return fmt.Sprintf("%s/%s/", c.BaseURL, c.Slug)
}

// TeamsURL is the team index for a season.
func (c Config) TeamsURL(year int) string {
	return fmt.Sprintf("%s/%s/%d/teams/", c.BaseURL, c.Slug, year)
}

// TeamURL is one team's season page.
func (c Config) TeamURL(year int, teamSlug string) string {
	return fmt.Sprintf("%s/%s/%d/teams/%s", c.BaseURL, c.Slug, year, teamSlug)
}

// CacheKey is the team-cache key for a season.
func (c Config) CacheKey(year int) string {
	return fmt.Sprintf("%s_%d", c.Slug, year)
}

// FallbackRound is the label used when no competition phase is found on the page.
func (c Config) FallbackRound() string {
	return c.Name + " Games"
}
