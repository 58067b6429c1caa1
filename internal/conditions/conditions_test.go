package conditions

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
)

const conditionsHTML = `<html><body>
<h2>Lift Status</h2>
<table>
<tr><th>Lift</th><th>Status</th></tr>
<tr><td>Galaxy Express</td><td>Open</td></tr>
<tr><td>Comet</td><td> closed </td></tr>
<tr><td>Lone cell</td></tr>
</table>
<h3>Easier Trails</h3>
<table>
<tr><td>Trail</td><td>Status</td><td>Surface</td></tr>
<tr><td>Lower Galaxy</td><td>open</td><td>Machine Groomed</td><td>Night skiing</td></tr>
<tr><td>Meteor</td><td>closed</td><td>Packed Powder</td></tr>
</table>
<h4>More Difficult</h4>
<table>
<tr><td><img alt="♦ Most Difficult" src="d.png">Rocket</td><td>Open</td><td>Groomed</td><td></td></tr>
<tr><td>Sunset</td><td>Open</td><td>Hardpack</td></tr>
</table>
<table>
<tr><td>Orphan</td><td>Open</td><td>Powder</td></tr>
</table>
</body></html>`

func TestParse(t *testing.T) {
	report, err := Parse(conditionsHTML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantLifts := []Lift{
		{Name: "Galaxy Express", Status: "OPEN"},
		{Name: "Comet", Status: "CLOSED"},
	}
	if !reflect.DeepEqual(report.Lifts, wantLifts) {
		t.Errorf("Lifts = %+v, want %+v", report.Lifts, wantLifts)
	}

	wantTrails := []Trail{
		{Name: "Lower Galaxy", Difficulty: "● Easier", Status: "OPEN", Conditions: "Machine Groomed Night skiing"},
		{Name: "Meteor", Difficulty: "● Easier", Status: "CLOSED", Conditions: "Packed Powder"},
		{Name: "Rocket", Difficulty: "♦ Most Difficult", Status: "OPEN", Conditions: "Groomed"},
		{Name: "Sunset", Difficulty: "♦ Most Difficult", Status: "OPEN", Conditions: "Hardpack"},
		{Name: "Orphan", Difficulty: "■ More Difficult", Status: "OPEN", Conditions: "Powder"},
	}
	if !reflect.DeepEqual(report.Trails, wantTrails) {
		t.Errorf("Trails =\n%+v\nwant\n%+v", report.Trails, wantTrails)
	}

	if got := len(report.OpenTrails()); got != 4 {
		t.Errorf("OpenTrails() = %d, want 4", got)
	}
	if closed := report.ClosedTrails(); len(closed) != 1 || closed[0].Name != "Meteor" {
		t.Errorf("ClosedTrails() = %+v", closed)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"one table", `<table><tr><td>A</td><td>Open</td></tr></table>`, ErrNoTables},
		{"no tables", `<p>Closed for the season</p>`, ErrNoTables},
		{"empty tables", `<table></table><table></table>`, ErrNoConditions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.body); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDifficultyFromHeading(t *testing.T) {
	tests := map[string]string{
		"EASIER TRAILS":       "● Easier",
		"More Difficult":      "■ More Difficult",
		"Most Difficult":      "♦ Most Difficult",
		"Extremely Difficult": "♦♦ Extremely Difficult",
		"Terrain Park":        "Unknown",
		"":                    "Unknown",
	}
	for heading, want := range tests {
		if got := difficultyFromHeading(heading); got != want {
			t.Errorf("difficultyFromHeading(%q) = %q, want %q", heading, got, want)
		}
	}
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conditions/" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, conditionsHTML)
	}))
	defer server.Close()

	f := fetch.New()
	defer f.Close()
	quiet := logger.New(logger.LevelError, io.Discard)

	c := NewWithURL(f, server.URL+"/conditions/", quiet)
	report, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(report.Lifts) != 2 || len(report.Trails) != 5 {
		t.Errorf("report = %+v", report)
	}

	bad := NewWithURL(f, server.URL+"/missing", quiet)
	if _, err := bad.Fetch(context.Background()); !fetch.IsTransport(err) {
		t.Errorf("Fetch() error = %v, want transport error", err)
	}
}
