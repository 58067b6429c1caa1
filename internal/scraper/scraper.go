package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// FailureKind classifies why a schedule could not be produced.
type FailureKind string

const (
	FailUnreachable     FailureKind = "unreachable"
	FailSectionNotFound FailureKind = "section_not_found"
	FailNoGames         FailureKind = "no_games"
	FailParse           FailureKind = "parse_error"
)

// Failure is a user-presentable reason a schedule is missing.
type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	return f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is either a round label with games, or a Failure.
type Result struct {
	Round   string
	Games   *sports.DayBucket
	Failure *Failure
}

// OK reports whether the result carries games.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Err returns the failure as an error, or nil.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

// Scraper fetches league pages through a shared fetcher.
type Scraper struct {
	fetcher fetch.Getter
	log     *logger.Logger
}

// New creates a Scraper. A nil log uses the package default logger.
func New(fetcher fetch.Getter, log *logger.Logger) *Scraper {
	if log == nil {
		log = logger.Default()
	}
	return &Scraper{fetcher: fetcher, log: log}
}

// FetchGames returns cfg's front-page games grouped by day. It never panics
// and never returns a transport error directly; every problem is a Failure.
func (s *Scraper) FetchGames(ctx context.Context, cfg sports.Config) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			s.log.Error("Panic while parsing schedule", logger.Fields{
				"sport": cfg.Slug,
				"type":  fmt.Sprintf("%T", r),
			}, err)
			res = failure(FailParse, "Error processing game data. Try again later.", err)
		}
		logger.RecordTiming("scrape."+cfg.Slug, time.Since(start))
		if res.OK() {
			logger.IncrCounter("scrape." + cfg.Slug + ".ok")
		} else {
			logger.IncrCounter("scrape." + cfg.Slug + "." + string(res.Failure.Kind))
		}
	}()

	url := cfg.ScheduleURL()
	body, err := s.fetcher.Get(ctx, url, fetch.PageTimeout)
	if err != nil {
		s.log.Warn("Schedule fetch failed", logger.Fields{"sport": cfg.Slug, "url": url, "error": err.Error()})
		return unreachable(err)
	}

	return s.ParseGames(body, cfg)
}

// ParseGames runs the locate and extract passes over an already fetched page.
func (s *Scraper) ParseGames(body string, cfg sports.Config) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.log.Error("Could not parse schedule page", logger.Fields{"sport": cfg.Slug}, err)
		return failure(FailParse, "Error processing game data. Try again later.", fmt.Errorf("parsing HTML: %w", err))
	}

	section, ok := LocateSection(doc, cfg)
	if !ok {
		s.log.Info("League section not on page", logger.Fields{"sport": cfg.Slug})
		return failure(FailSectionNotFound,
			fmt.Sprintf("%s section not found - likely the off-season, or no data posted yet.", cfg.Name), nil)
	}

	ex := Extract(Tokenize(doc), cfg)
	s.log.Debug("Extracted games", logger.Fields{
		"sport":   cfg.Slug,
		"round":   section.Round,
		"days":    ex.Games.Len(),
		"games":   ex.Games.Total(),
		"skipped": ex.Skipped,
		"state":   ex.State.String(),
	})

	if ex.Games.Total() == 0 {
		if ex.Skipped > 0 {
			s.log.Warn("Game boxes found but none parsed", logger.Fields{"sport": cfg.Slug, "skipped": ex.Skipped})
			return failure(FailNoGames,
				fmt.Sprintf("Found the %s section but could not read any games - the website layout may have changed.", cfg.Name), nil)
		}
		return failure(FailNoGames,
			fmt.Sprintf("No %s games found. The season may be over or no games scheduled.", cfg.Name), nil)
	}

	return Result{Round: section.Round, Games: ex.Games}
}

// ConnectionReport describes one reachability probe of a league page.
type ConnectionReport struct {
	URL           string
	OK            bool
	Status        int
	ContentLength int
	Err           error
}

// TestConnection fetches cfg's schedule page and reports what came back.
func (s *Scraper) TestConnection(ctx context.Context, cfg sports.Config) ConnectionReport {
	url := cfg.ScheduleURL()
	report := ConnectionReport{URL: url}

	body, err := s.fetcher.Get(ctx, url, fetch.PageTimeout)
	if err != nil {
		report.Err = err
		if fe, ok := fetch.AsError(err); ok {
			report.Status = fe.Status
		}
		return report
	}

	report.OK = true
	report.Status = http.StatusOK
	report.ContentLength = len(body)
	return report
}

func failure(kind FailureKind, reason string, err error) Result {
	return Result{Failure: &Failure{Kind: kind, Reason: reason, Err: err}}
}

func unreachable(err error) Result {
	reason := "Could not reach plaintextsports.com. Try again shortly."
	if fe, ok := fetch.AsError(err); ok {
		switch fe.Kind {
		case fetch.KindStatus:
			reason = "Website unavailable (HTTP error). Try again shortly."
		case fetch.KindTimeout:
			reason = "plaintextsports.com timed out. Try again shortly."
		}
	}
	return failure(FailUnreachable, reason, err)
}
