// Package scraper fetches plaintextsports.com pages and turns them into
// schedule data.
//
// The front page for a league interleaves headings, paragraphs, and anchors with
// no stable nesting per day. Tokenize flattens the parsed document into an ordered
// stream of day headers, game boxes, and other text; Extract runs a small state
// machine (BeforeSport, InSport, Stopped) over that stream and buckets each parsed
// game box under the most recent day header. Team pages are linearized to text
// lines and split into preseason, regular season, and playoff sections.
//
// Failures are values: FetchGames always returns a Result, and a Result carries
// either games or a Failure explaining what went wrong.
package scraper
