package scraper

import (
	"strings"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// State is the extractor's position relative to the league's section.
type State int

const (
	BeforeSport State = iota
	InSport
	Stopped
)

func (s State) String() string {
	switch s {
	case BeforeSport:
		return "before_sport"
	case InSport:
		return "in_sport"
	default:
		return "stopped"
	}
}

// Extraction is the outcome of one pass over a token stream.
type Extraction struct {
	Games   *sports.DayBucket
	State   State
	Skipped int // boxes seen inside the section that failed to parse
}

// Extract walks tokens and collects cfg's games grouped by day.
//
// Tokens are ignored until one mentions the league's full name. From then on
// day headers set the current day and game boxes are parsed into it. A token
// naming any league in the stop-list, or reaching the game cap, ends the pass.
// Boxes seen before any day header go under Today.
func Extract(tokens []Token, cfg sports.Config) Extraction {
	ex := Extraction{Games: sports.NewDayBucket(), State: BeforeSport}
	day := sports.Today

	for _, tok := range tokens {
		if ex.State == BeforeSport {
			if strings.Contains(tok.Text, cfg.FullName) {
				ex.State = InSport
			}
			continue
		}

		if strings.Contains(tok.Text, cfg.FullName) {
			continue
		}
		if containsAny(tok.Text, cfg.StopList) {
			ex.State = Stopped
			break
		}

		switch tok.Kind {
		case TokenDayHeader:
			day = tok.Day
		case TokenGameBox:
			game, ok := ParseGameBox(tok.Text)
			if !ok {
				ex.Skipped++
				continue
			}
			ex.Games.Add(day, game)
		}

		if cfg.GameCap > 0 && ex.Games.Total() >= cfg.GameCap {
			ex.State = Stopped
			break
		}
	}

	return ex
}

func containsAny(text string, names []string) bool {
	for _, name := range names {
		if strings.Contains(text, name) {
			return true
		}
	}
	return false
}
