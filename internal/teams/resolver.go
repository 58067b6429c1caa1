package teams

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
	"github.com/pfrederiksen/plaintext-sports/internal/teamcache"
)

// Resolver fetches and caches season team lists.
type Resolver struct {
	fetcher fetch.Getter
	cache   *teamcache.Cache
	log     *logger.Logger
	now     func() time.Time
}

// NewResolver creates a Resolver. A nil log uses the package default logger.
func NewResolver(fetcher fetch.Getter, cache *teamcache.Cache, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Default()
	}
	return &Resolver{fetcher: fetcher, cache: cache, log: log, now: time.Now}
}

// YearError reports a season outside the range the site publishes.
type YearError struct {
	Year    int
	Current int
}

func (e *YearError) Error() string {
	if e.Year > e.Current {
		return fmt.Sprintf("Data not yet available for %d.", e.Year)
	}
	return fmt.Sprintf("Data only available for %d-%d.", sports.FirstSeasonYear, e.Current)
}

// CheckYear refuses seasons the site has no team pages for.
func (r *Resolver) CheckYear(cfg sports.Config, year int) error {
	current := cfg.CurrentSeasonYear(r.now())
	if year < sports.FirstSeasonYear || year > current {
		return &YearError{Year: year, Current: current}
	}
	return nil
}

// SeasonYear returns cfg's current season year.
func (r *Resolver) SeasonYear(cfg sports.Config) int {
	return cfg.CurrentSeasonYear(r.now())
}

// FetchTeamList returns cfg's teams for year. A fresh cache entry is returned
// as is. Otherwise the team index is fetched and written through when it
// lists at least one team. The result may be empty.
func (r *Resolver) FetchTeamList(ctx context.Context, cfg sports.Config, year int) ([]sports.TeamRef, error) {
	key := cfg.CacheKey(year)

	entry, status, err := r.cache.Lookup(ctx, key)
	if err != nil {
		r.log.Warn("Team cache read failed, fetching", logger.Fields{"cache_key": key, "error": err.Error()})
	}
	if status == teamcache.Fresh {
		logger.IncrCounter("teams.cache_hit")
		return entry.Teams, nil
	}
	logger.IncrCounter("teams.cache_miss")

	teams, fetchErr := r.fetchIndex(ctx, cfg, year)
	if len(teams) > 0 {
		if _, err := r.cache.Save(ctx, key, teams); err != nil {
			r.log.Error("Team cache write failed", logger.Fields{"cache_key": key}, err)
		}
		return teams, nil
	}

	if status == teamcache.Stale && len(entry.Teams) > 0 {
		fields := logger.Fields{
			"cache_key":   key,
			"stale_teams": len(entry.Teams),
			"cached_at":   entry.Time().UTC().Format(time.RFC3339),
		}
		if fetchErr != nil {
			fields["error"] = fetchErr.Error()
		}
		r.log.Warn("Team list refetch returned no teams; keeping stale cache entry unused", fields)
	}

	return nil, fetchErr
}

func (r *Resolver) fetchIndex(ctx context.Context, cfg sports.Config, year int) ([]sports.TeamRef, error) {
	url := cfg.TeamsURL(year)
	body, err := r.fetcher.Get(ctx, url, fetch.PageTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetching team list: %w", err)
	}

	teams, err := ParseTeamIndex(body, cfg.Slug)
	if err != nil {
		return nil, err
	}
	r.log.Debug("Fetched team index", logger.Fields{"url": url, "teams": len(teams)})
	return teams, nil
}

// ParseTeamIndex collects team links of the form /{sport}/{year}/teams/{team}.
// The slug is the last path segment. Duplicate slugs keep their first name.
func ParseTeamIndex(body, sportSlug string) ([]sports.TeamRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing team index: %w", err)
	}

	pattern := regexp.MustCompile(`/` + regexp.QuoteMeta(sportSlug) + `/\d+/teams/[^/?#]+`)
	seen := make(map[string]bool)
	var teams []sports.TeamRef

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !pattern.MatchString(href) {
			return
		}
		name := strings.TrimSpace(sel.Text())
		slug := lastSegment(href)
		if name == "" || slug == "" || seen[slug] {
			return
		}
		seen[slug] = true
		teams = append(teams, sports.TeamRef{Name: name, Slug: slug})
	})

	return teams, nil
}

func lastSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}
