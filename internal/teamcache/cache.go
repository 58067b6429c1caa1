package teamcache

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// TTL is how long a fetched team list stays fresh.
const TTL = 90 * 24 * time.Hour

// Entry is one cached team list. CachedAt is epoch seconds; a missing value
// decodes as zero and is always stale.
type Entry struct {
	Teams    []sports.TeamRef `json:"teams"`
	CachedAt float64          `json:"cached_at"`
}

// NewEntry stamps teams with now.
func NewEntry(teams []sports.TeamRef, now time.Time) Entry {
	return Entry{Teams: teams, CachedAt: float64(now.UnixNano()) / 1e9}
}

// Time returns CachedAt as a time.Time.
func (e Entry) Time() time.Time {
	sec, frac := math.Modf(e.CachedAt)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Fresh reports whether the entry is younger than TTL at now.
func (e Entry) Fresh(now time.Time) bool {
	return e.CachedAt > 0 && now.Sub(e.Time()) < TTL
}

// Store is a key/value backend for entries. Get returns found=false with a
// nil error for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	Close() error
}

// Status describes what Lookup found.
type Status int

const (
	Miss Status = iota
	Fresh
	Stale
)

func (s Status) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}

// Cache applies TTL and write rules over a Store.
type Cache struct {
	store Store
	now   func() time.Time
}

// New wraps store.
func New(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Lookup returns the entry under key with its freshness. Stale entries are
// returned with Status Stale so callers can decide what to do with them.
func (c *Cache) Lookup(ctx context.Context, key string) (Entry, Status, error) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return Entry{}, Miss, fmt.Errorf("reading team cache %s: %w", key, err)
	}
	if !ok {
		return Entry{}, Miss, nil
	}
	if !entry.Fresh(c.now()) {
		return entry, Stale, nil
	}
	return entry, Fresh, nil
}

// Save writes teams under key stamped with the current time. An empty list is
// not written and Save reports false.
func (c *Cache) Save(ctx context.Context, key string, teams []sports.TeamRef) (bool, error) {
	if len(teams) == 0 {
		return false, nil
	}
	if err := c.store.Put(ctx, key, NewEntry(teams, c.now())); err != nil {
		return false, fmt.Errorf("writing team cache %s: %w", key, err)
	}
	return true, nil
}

// Close releases the backend.
func (c *Cache) Close() error {
	return c.store.Close()
}
