package teamcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/redis/go-redis/v9"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

var sampleTeams = []sports.TeamRef{
	{Name: "Boston Bruins", Slug: "bruins"},
	{Name: "Montréal Canadiens", Slug: "canadiens"},
}

func TestEntry_Fresh(t *testing.T) {
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"just cached", NewEntry(sampleTeams, now), true},
		{"89 days", NewEntry(sampleTeams, now.Add(-89*24*time.Hour)), true},
		{"91 days", NewEntry(sampleTeams, now.Add(-91*24*time.Hour)), false},
		{"missing cached_at", Entry{Teams: sampleTeams}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Fresh(now); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_Time(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 30, 15, 500_000_000, time.UTC)
	got := NewEntry(nil, now).Time()
	if d := got.Sub(now); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("Time() = %v, want %v", got, now)
	}
}

// stores returns every backend wired to an in-process fake.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return map[string]Store{
		"file":   fs,
		"memory": NewMemoryStore(),
		"redis":  NewRedisStoreWithClient(newFakeRedis()),
		"dynamo": NewDynamoStoreWithClient(newFakeDynamo(), "team-cache"),
	}
}

func TestCache_Backends(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			c := New(store)
			defer c.Close()
			c.now = func() time.Time { return base }

			if _, status, err := c.Lookup(ctx, "nhl_2024"); err != nil || status != Miss {
				t.Fatalf("Lookup() on empty = %v, %v", status, err)
			}

			saved, err := c.Save(ctx, "nhl_2024", sampleTeams)
			if err != nil || !saved {
				t.Fatalf("Save() = %v, %v", saved, err)
			}

			c.now = func() time.Time { return base.Add(30 * 24 * time.Hour) }
			entry, status, err := c.Lookup(ctx, "nhl_2024")
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if status != Fresh {
				t.Errorf("status after 30 days = %v, want fresh", status)
			}
			if !reflect.DeepEqual(entry.Teams, sampleTeams) {
				t.Errorf("Teams = %+v, want %+v", entry.Teams, sampleTeams)
			}

			c.now = func() time.Time { return base.Add(91 * 24 * time.Hour) }
			entry, status, err = c.Lookup(ctx, "nhl_2024")
			if err != nil || status != Stale {
				t.Errorf("status after 91 days = %v, %v; want stale", status, err)
			}
			if len(entry.Teams) != len(sampleTeams) {
				t.Errorf("stale entry should still carry teams, got %d", len(entry.Teams))
			}

			if _, status, _ := c.Lookup(ctx, "nhl_2023"); status != Miss {
				t.Errorf("other key status = %v, want miss", status)
			}
		})
	}
}

func TestCache_SaveSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	if _, err := c.Save(ctx, "nba_2024", sampleTeams); err != nil {
		t.Fatal(err)
	}
	saved, err := c.Save(ctx, "nba_2024", nil)
	if err != nil || saved {
		t.Fatalf("Save(empty) = %v, %v; want false, nil", saved, err)
	}

	entry, status, _ := c.Lookup(ctx, "nba_2024")
	if status != Fresh || len(entry.Teams) != 2 {
		t.Errorf("empty save overwrote entry: %v %+v", status, entry)
	}
}

func TestFileStore_Document(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if fs.Path() != filepath.Join(dir, FileName) {
		t.Errorf("Path() = %q", fs.Path())
	}

	// entries written by older releases can lack cached_at
	doc := `{"nfl_2024": {"teams": [{"name": "Kansas City Chiefs", "slug": "chiefs"}]}}`
	if err := os.WriteFile(fs.Path(), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(fs)
	entry, status, err := c.Lookup(context.Background(), "nfl_2024")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if status != Stale {
		t.Errorf("status = %v, want stale for missing cached_at", status)
	}
	if len(entry.Teams) != 1 || entry.Teams[0].Slug != "chiefs" {
		t.Errorf("Teams = %+v", entry.Teams)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, ok, err := fs.Get(ctx, "nfl_2024"); err != nil || ok {
		t.Fatalf("Get() on corrupt file = %v, %v", ok, err)
	}
	if err := fs.Put(ctx, "nfl_2024", NewEntry(sampleTeams, time.Now())); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok, _ := fs.Get(ctx, "nfl_2024"); !ok {
		t.Error("Put() should have rewritten the corrupt file")
	}
}

func TestRedisStore_Errors(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")
	s := NewRedisStoreWithClient(fake)

	if _, _, err := s.Get(context.Background(), "k"); err == nil {
		t.Error("Get() expected error")
	}

	fake.getErr = nil
	fake.data[RedisPrefix+"bad"] = "{"
	if _, _, err := s.Get(context.Background(), "bad"); err == nil {
		t.Error("Get() of undecodable value expected error")
	}
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	fake := newFakeRedis()
	s := NewRedisStoreWithClient(fake)
	if err := s.Put(context.Background(), "mlb_2025", NewEntry(sampleTeams, time.Now())); err != nil {
		t.Fatal(err)
	}
	if _, ok := fake.data["sportsbot:team_cache:mlb_2025"]; !ok {
		t.Errorf("keys = %v, want prefixed key", fake.data)
	}
	if fake.lastTTL != 0 {
		t.Errorf("expiration = %v, want none", fake.lastTTL)
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisStore() expected error for bad URL")
	}
}

func TestDynamoStore_Item(t *testing.T) {
	fake := newFakeDynamo()
	s := NewDynamoStoreWithClient(fake, "team-cache")

	entry := Entry{Teams: sampleTeams, CachedAt: 1736000000.25}
	if err := s.Put(context.Background(), "nba_2024", entry); err != nil {
		t.Fatal(err)
	}

	item := fake.items["nba_2024"]
	if n, ok := item["CachedAt"].(*types.AttributeValueMemberN); !ok || n.Value != "1736000000.250" {
		t.Errorf("CachedAt attribute = %#v", item["CachedAt"])
	}
	if fake.lastTable != "team-cache" {
		t.Errorf("table = %q", fake.lastTable)
	}

	got, ok, err := s.Get(context.Background(), "nba_2024")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got.CachedAt != entry.CachedAt || !reflect.DeepEqual(got.Teams, entry.Teams) {
		t.Errorf("Get() = %+v, want %+v", got, entry)
	}
}

type fakeRedis struct {
	data    map[string]string
	getErr  error
	lastTTL time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	return nil
}

type fakeDynamo struct {
	items     map[string]map[string]types.AttributeValue
	lastTable string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	key := in.Key["CacheKey"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastTable = *in.TableName
	key := in.Item["CacheKey"].(*types.AttributeValueMemberS).Value
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}
