package scraper

import (
	"strconv"
	"strings"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// BoxMarker identifies anchor text drawn as an ASCII game box.
const BoxMarker = "+-"

const borderChars = "+-| \t\r"

// ParseGameBox parses one ASCII game box into a GameRecord.
//
// Expected shape:
//
//	+--------------+
//	|  4:30 PM ET  |
//	| 5 LAR 12-5   |
//	| 4 CAR 8-9    |
//	+--------- FOX +
//
// The network line is optional. Fewer than three usable lines is a failed parse.
func ParseGameBox(text string) (sports.GameRecord, bool) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.Trim(raw, borderChars)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) < 3 {
		return sports.GameRecord{}, false
	}

	game := sports.GameRecord{
		Status: lines[0],
		Away:   lines[1],
		Home:   lines[2],
	}
	if len(lines) > 3 {
		game.Network = strings.TrimSpace(strings.ReplaceAll(lines[3], "-", ""))
	}

	game.AwayScore = splitScore(game.Away)
	game.HomeScore = splitScore(game.Home)

	return game, true
}

// splitScore reads "KC 21" as team KC with 21 points. Side text without a
// trailing number (a record or a bare team) has no score.
func splitScore(side string) *sports.Score {
	parts := strings.Fields(side)
	if len(parts) < 2 {
		return nil
	}

	last := parts[len(parts)-1]
	if !isDigits(last) {
		return nil
	}
	points, err := strconv.Atoi(last)
	if err != nil {
		return nil
	}

	return &sports.Score{
		Team:   strings.Join(parts[:len(parts)-1], " "),
		Points: points,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
