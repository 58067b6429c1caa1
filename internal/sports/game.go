package sports

// Score is one side of a live or final game.
type Score struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// GameRecord represents one scheduled, live, or final game parsed from a game box
type GameRecord struct {
	Status  string `json:"status"`
	Away    string `json:"away"`
	Home    string `json:"home"`
	Network string `json:"network,omitempty"`

	// Set only when the side text ends in a numeric score.
	AwayScore *Score `json:"away_score,omitempty"`
	HomeScore *Score `json:"home_score,omitempty"`
}

// HasScores reports whether both sides carry a score (live or final).
func (g GameRecord) HasScores() bool {
	return g.AwayScore != nil && g.HomeScore != nil
}

// Day labels recognized in schedule headings.
const (
	Today    = "Today"
	Tomorrow = "Tomorrow"
)

// DayLabels lists every heading token that starts a new day.
var DayLabels = []string{
	Today, Tomorrow,
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsDayLabel reports whether s is exactly one of DayLabels.
func IsDayLabel(s string) bool {
	for _, d := range DayLabels {
		if s == d {
			return true
		}
	}
	return false
}

// DayBucket maps day labels to games, keeping both in first-seen order.
type DayBucket struct {
	order []string
	games map[string][]GameRecord
}

// NewDayBucket creates an empty bucket.
func NewDayBucket() *DayBucket {
	return &DayBucket{games: make(map[string][]GameRecord)}
}

// Add appends game under day.
func (b *DayBucket) Add(day string, game GameRecord) {
	if _, ok := b.games[day]; !ok {
		b.order = append(b.order, day)
	}
	b.games[day] = append(b.games[day], game)
}

// Days returns the day labels in the order they were first added.
func (b *DayBucket) Days() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Games returns the games for day, or nil.
func (b *DayBucket) Games(day string) []GameRecord {
	return b.games[day]
}

// Len returns the number of days.
func (b *DayBucket) Len() int {
	return len(b.order)
}

// Total returns the number of games across all days.
func (b *DayBucket) Total() int {
	n := 0
	for _, g := range b.games {
		n += len(g)
	}
	return n
}
