package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// roundKeywords mark text that names a competition phase.
var roundKeywords = []string{
	"Week", "Wild Card", "Divisional", "Conference", "Championship",
	"Super Bowl", "Stanley Cup", "World Series", "Finals", "Playoffs", "Round",
}

// Section is where a league's listing starts on the front page.
type Section struct {
	Round string
}

// LocateSection finds the first text node naming cfg's league. The round
// label is taken from the next non-blank text node when it names a phase,
// and falls back to "{Name} Games" otherwise.
func LocateSection(doc *goquery.Document, cfg sports.Config) (Section, bool) {
	texts := textNodes(doc)

	for i, n := range texts {
		if !strings.Contains(n.Data, cfg.FullName) {
			continue
		}

		section := Section{Round: cfg.FallbackRound()}
		for _, next := range texts[i+1:] {
			text := collapse(next.Data)
			if text == "" {
				continue
			}
			if isRoundLabel(text) {
				section.Round = text
			}
			break
		}
		return section, true
	}

	return Section{}, false
}

func isRoundLabel(text string) bool {
	for _, kw := range roundKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// textNodes returns the document's visible text nodes in document order.
func textNodes(doc *goquery.Document) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			out = append(out, n)
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
