package teams

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// MatchCutoff is the minimum similarity ratio for a fuzzy match.
const MatchCutoff = 0.6

// FindTeamSlug resolves input to a team's slug and full name.
//
// Every team contributes its full name, slug, name without spaces, and each
// word of its name as lookup keys; a later team takes over a key an earlier
// one also produced. An exact key match wins. Otherwise the key with the
// highest similarity ratio at or above MatchCutoff is used, ties going to the
// lexicographically greatest key.
func FindTeamSlug(input string, teams []sports.TeamRef) (slug, name string, ok bool) {
	keys := make(map[string]sports.TeamRef)
	var order []string
	add := func(key string, team sports.TeamRef) {
		key = fold(key)
		if key == "" {
			return
		}
		if _, exists := keys[key]; !exists {
			order = append(order, key)
		}
		keys[key] = team
	}

	for _, team := range teams {
		add(team.Name, team)
		add(team.Slug, team)
		add(strings.ReplaceAll(team.Name, " ", ""), team)
		for _, word := range strings.Fields(team.Name) {
			add(word, team)
		}
	}

	query := fold(input)
	if query == "" {
		return "", "", false
	}
	if team, found := keys[query]; found {
		return team.Slug, team.Name, true
	}

	best, bestScore := "", 0.0
	queryChars := chars(query)
	for _, key := range order {
		score := difflib.NewMatcher(chars(key), queryChars).Ratio()
		if score < MatchCutoff {
			continue
		}
		if score > bestScore || (score == bestScore && key > best) {
			best, bestScore = key, score
		}
	}
	if best == "" {
		return "", "", false
	}

	team := keys[best]
	return team.Slug, team.Name, true
}

// fold lowercases s and strips combining marks so "Montréal" matches "montreal".
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
