package sports

// TeamRef identifies a team on a season's team index page
type TeamRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TeamSchedule holds a team's season split into sections.
//
// Each section holds the raw lines that followed its marker on the team page.
type TeamSchedule struct {
	TeamName      string   `json:"team_name"`
	Record        string   `json:"record,omitempty"`
	Preseason     []string `json:"preseason,omitempty"`
	RegularSeason []string `json:"regular_season,omitempty"`
	Playoffs      []string `json:"playoffs,omitempty"`
}

// Empty reports whether no section has any lines.
func (s TeamSchedule) Empty() bool {
	return len(s.Preseason) == 0 && len(s.RegularSeason) == 0 && len(s.Playoffs) == 0
}
