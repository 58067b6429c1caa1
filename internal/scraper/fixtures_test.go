package scraper

import (
	"context"
	"io"
	"time"

	"github.com/pfrederiksen/plaintext-sports/internal/logger"
)

const nflSampleHTML = `<!DOCTYPE html>
<html>
<head><title>Plain Text Sports</title></head>
<body>
<h1>plaintextsports.com</h1>
<h2><a href="/nfl/">National Football League</a></h2>
<p>Week 18</p>
<h3>Today, January 5</h3>
<a href="/nfl/2024/games/1">
+--------------+
|  1:00 PM ET  |
| 5 LAR 12-5   |
| 4 CAR 8-9    |
+--------- FOX +
</a>
<a href="/nfl/2024/games/2">
+--------------+
|  Final       |
| KC 21        |
| BUF 17       |
+--------- NBC +
</a>
<h3>Tomorrow, January 6</h3>
<a href="/nfl/2024/games/3">
+--------------+
|  4:30 PM ET  |
| DAL 12-5     |
| PHI 13-4     |
+--------------+
</a>
<a href="/nfl/2024/games/4">
+--------------+
|  8:20 PM ET  |
| GB 11-6      |
| DET 15-2     |
+-------- ESPN +
</a>
<h3>Sunday, January 12</h3>
<a href="/nfl/2024/games/5">
+--------------+
|  1:00 PM ET  |
| MIA 8-9      |
| NYJ 5-12     |
+--------- CBS +
</a>
<h2><a href="/nba/">National Basketball Association</a></h2>
<h3>Today</h3>
<a href="/nba/2024/games/9">
+--------------+
|  7:30 PM ET  |
| BOS 30-10    |
| NYK 25-15    |
+--------- TNT +
</a>
</body>
</html>`

const nflMalformedHTML = `<html><body>
<h2><a href="/nfl/">National Football League</a></h2>
<h3>Today</h3>
<a href="/nfl/2024/games/1">+-+ BROKEN +-+</a>
<a href="/nfl/2024/games/2">+-+
| ONLY ONE |
+-+</a>
</body></html>`

const nflEmptySectionHTML = `<html><body>
<h2><a href="/nfl/">National Football League</a></h2>
<p>No games scheduled.</p>
<h2><a href="/nba/">National Basketball Association</a></h2>
</body></html>`

const teamPageHTML = `<html><body>
<div class="header">plaintextsports.com</div>
<div class="font-bold text-center">Kansas City Chiefs</div>
<div class="text-center">15-2 (1st in AFC West)</div>
<div>Preseason: 2-1</div>
<div>Aug 10 @ JAX L 14-26</div>
<div>Aug 17 vs DET W 24-20</div>
<div>Regular Season: 15-2</div>
<div>Sep 5 vs BAL W 27-20</div>
<div>Sep 15 @ CIN W 26-25</div>
<div>--</div>
<div>Sep 22 @ ATL W 22-17</div>
<div>Playoffs: 1-0</div>
<div>Jan 18 vs HOU W 23-14</div>
<div class="footer">PlainTextSports &amp; friends</div>
<div>Not schedule data</div>
</body></html>`

type fakeGetter struct {
	body      string
	err       error
	panicWith interface{}
	urls      []string
}

func (f *fakeGetter) Get(_ context.Context, url string, _ time.Duration) (string, error) {
	f.urls = append(f.urls, url)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.body, f.err
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}
