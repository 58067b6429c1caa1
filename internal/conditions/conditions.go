// Package conditions scrapes lift and trail status from the Bristol Mountain
// conditions page.
package conditions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
)

// URL is the public conditions page.
const URL = "https://www.bristolmountain.com/conditions/"

const unknownDifficulty = "Unknown"

var (
	// ErrNoTables is returned when the page lacks a lift table and a trail table.
	ErrNoTables = errors.New("could not find both lift and trail tables")

	// ErrNoConditions is returned when the tables held no lift or no trail rows.
	ErrNoConditions = errors.New("no lift or trail rows found")
)

// Lift is one chairlift or surface lift.
type Lift struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Open reports whether the lift is running.
func (l Lift) Open() bool { return l.Status == "OPEN" }

// Trail is one alpine trail.
type Trail struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Status     string `json:"status"`
	Conditions string `json:"conditions"`
}

// Open reports whether the trail is open.
func (t Trail) Open() bool { return t.Status == "OPEN" }

// Report holds every lift and trail on the page.
type Report struct {
	Lifts  []Lift  `json:"lifts"`
	Trails []Trail `json:"trails"`
}

// OpenTrails returns open trails in page order.
func (r Report) OpenTrails() []Trail {
	var out []Trail
	for _, t := range r.Trails {
		if t.Open() {
			out = append(out, t)
		}
	}
	return out
}

// ClosedTrails returns every trail that is not open, in page order.
func (r Report) ClosedTrails() []Trail {
	var out []Trail
	for _, t := range r.Trails {
		if !t.Open() {
			out = append(out, t)
		}
	}
	return out
}

// Client fetches the conditions page.
type Client struct {
	fetcher fetch.Getter
	url     string
	log     *logger.Logger
}

// New creates a Client for the public page.
func New(fetcher fetch.Getter, log *logger.Logger) *Client {
	return NewWithURL(fetcher, URL, log)
}

// NewWithURL creates a Client for another page location.
func NewWithURL(fetcher fetch.Getter, url string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{fetcher: fetcher, url: url, log: log}
}

// URL returns the page this client reads.
func (c *Client) URL() string { return c.url }

// Fetch downloads and parses the conditions page.
func (c *Client) Fetch(ctx context.Context) (Report, error) {
	body, err := c.fetcher.Get(ctx, c.url, fetch.PageTimeout)
	if err != nil {
		return Report{}, fmt.Errorf("fetching conditions: %w", err)
	}

	report, err := Parse(body)
	if err != nil {
		c.log.Warn("Conditions page did not parse", logger.Fields{"url": c.url, "error": err.Error()})
		return Report{}, err
	}

	c.log.Debug("Parsed conditions", logger.Fields{"lifts": len(report.Lifts), "trails": len(report.Trails)})
	return report, nil
}

// Parse reads lifts from the first table and trails from every later one.
func Parse(body string) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Report{}, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		return Report{}, ErrNoTables
	}

	var report Report
	tables.First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}
		report.Lifts = append(report.Lifts, Lift{
			Name:   cellText(cols.Eq(0)),
			Status: strings.ToUpper(cellText(cols.Eq(1))),
		})
	})

	headings := precedingHeadings(doc)
	tables.Slice(1, tables.Length()).Each(func(_ int, table *goquery.Selection) {
		difficulty := difficultyFromHeading(headings[table.Get(0)])

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cols := row.Find("td")
			if cols.Length() < 3 {
				return
			}
			name := cellText(cols.Eq(0))
			switch strings.ToLower(name) {
			case "trail", "lift", "status":
				return
			}

			// an icon sets the difficulty for this row and the rows after it
			if alt, ok := cols.Eq(0).Find("img").First().Attr("alt"); ok && alt != "" {
				difficulty = alt
			}

			conditions := cellText(cols.Eq(2))
			if cols.Length() > 3 {
				conditions = strings.TrimSpace(conditions + " " + cellText(cols.Eq(3)))
			}

			report.Trails = append(report.Trails, Trail{
				Name:       name,
				Difficulty: difficulty,
				Status:     strings.ToUpper(cellText(cols.Eq(1))),
				Conditions: conditions,
			})
		})
	})

	if len(report.Lifts) == 0 || len(report.Trails) == 0 {
		return report, ErrNoConditions
	}
	return report, nil
}

func difficultyFromHeading(heading string) string {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "easier"):
		return "● Easier"
	case strings.Contains(h, "more difficult"):
		return "■ More Difficult"
	case strings.Contains(h, "most difficult"):
		return "♦ Most Difficult"
	case strings.Contains(h, "extremely difficult"):
		return "♦♦ Extremely Difficult"
	}
	return unknownDifficulty
}

// precedingHeadings maps each table to the text of the nearest h3, h4, or
// strong element before it in document order.
func precedingHeadings(doc *goquery.Document) map[*html.Node]string {
	out := make(map[*html.Node]string)
	last := ""
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h3", "h4", "strong":
				last = goquery.NewDocumentFromNode(n).Text()
			case "table":
				out[n] = last
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return out
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
