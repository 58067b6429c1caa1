package scraper

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// ErrTeamNotFound is returned when a team page has no team-name element.
var ErrTeamNotFound = errors.New("team name element not found")

var (
	closeBlockRe = regexp.MustCompile(`(?i)</(div|b)>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`[ \t\f\v]+`)
)

type sectionName int

const (
	sectionNone sectionName = iota
	sectionPreseason
	sectionRegular
	sectionPlayoffs
)

// FetchTeamSchedule fetches and sections one team's season page.
func (s *Scraper) FetchTeamSchedule(ctx context.Context, cfg sports.Config, year int, teamSlug string) (sports.TeamSchedule, error) {
	url := cfg.TeamURL(year, teamSlug)
	body, err := s.fetcher.Get(ctx, url, fetch.PageTimeout)
	if err != nil {
		return sports.TeamSchedule{}, fmt.Errorf("fetching team schedule: %w", err)
	}

	sched, err := ParseTeamSchedule(body)
	if err != nil {
		return sports.TeamSchedule{}, fmt.Errorf("parsing %s: %w", url, err)
	}

	if sched.Empty() {
		s.log.Warn("Team page has no schedule sections", logger.Fields{"sport": cfg.Slug, "team": teamSlug, "year": year})
	}
	s.log.Debug("Parsed team schedule", logger.Fields{
		"sport":     cfg.Slug,
		"team":      teamSlug,
		"year":      year,
		"preseason": len(sched.Preseason),
		"regular":   len(sched.RegularSeason),
		"playoffs":  len(sched.Playoffs),
	})
	return sched, nil
}

// ParseTeamSchedule extracts the team name, record, and schedule sections from
// a team page.
func ParseTeamSchedule(body string) (sports.TeamSchedule, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return sports.TeamSchedule{}, fmt.Errorf("parsing HTML: %w", err)
	}

	nameSel := doc.Find("div.font-bold.text-center").First()
	if nameSel.Length() == 0 {
		return sports.TeamSchedule{}, ErrTeamNotFound
	}
	name := strings.TrimSpace(nameSel.Text())

	// Record is the first text-center div after the name in document order.
	var record string
	seen := false
	doc.Find("div.text-center").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Get(0) == nameSel.Get(0) {
			seen = true
			return true
		}
		if seen {
			record = strings.TrimSpace(sel.Text())
			return false
		}
		return true
	})

	bodyHTML, err := goquery.OuterHtml(doc.Find("body"))
	if err != nil {
		return sports.TeamSchedule{}, fmt.Errorf("rendering body: %w", err)
	}

	return Sectionize(name, record, Linearize(bodyHTML)), nil
}

// Linearize turns page markup into trimmed, non-blank text lines. Closing div
// and bold tags end a line; every other tag separates words.
func Linearize(markup string) []string {
	text := closeBlockRe.ReplaceAllString(markup, "\n")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Sectionize assigns schedule lines to preseason, regular season, and
// playoffs. Marker lines open a section and are not kept. Lines before the
// first marker are dropped, as are lines of two characters or fewer. The
// site footer ends the schedule.
func Sectionize(name, record string, lines []string) sports.TeamSchedule {
	sched := sports.TeamSchedule{TeamName: name, Record: record}
	current := sectionNone

	for _, line := range lines {
		if marker := markerFor(line); marker != sectionNone {
			current = marker
			continue
		}
		if current == sectionNone {
			continue
		}
		if strings.Contains(strings.ToLower(line), "plaintextsports") {
			break
		}
		if len(line) <= 2 {
			continue
		}

		switch current {
		case sectionPreseason:
			sched.Preseason = append(sched.Preseason, line)
		case sectionRegular:
			sched.RegularSeason = append(sched.RegularSeason, line)
		case sectionPlayoffs:
			sched.Playoffs = append(sched.Playoffs, line)
		}
	}

	return sched
}

func markerFor(line string) sectionName {
	switch {
	case strings.Contains(line, "Playoffs:"), strings.Contains(line, "Postseason:"):
		return sectionPlayoffs
	case strings.Contains(line, "Regular Season:"):
		return sectionRegular
	case strings.Contains(line, "Preseason:"):
		return sectionPreseason
	}
	return sectionNone
}
