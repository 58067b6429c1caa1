package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "schedule fetched",
			fields:  Fields{"sport": "nfl"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "token stream",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "parse failed",
			err:     errors.New("boom"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("team list fetch failed", Fields{"cache_key": "nba_2024"}, errors.New("timeout"))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v (line %q)", err, buf.String())
	}

	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "team list fetch failed" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Error != "timeout" {
		t.Errorf("Error = %q, want timeout", entry.Error)
	}
	if entry.Fields["cache_key"] != "nba_2024" {
		t.Errorf("Fields[cache_key] = %v, want nba_2024", entry.Fields["cache_key"])
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
}

func TestLogger_UnmarshalableField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Info("bad field", Fields{"fn": func() {}})

	if !strings.Contains(buf.String(), "marshal error") {
		t.Errorf("expected plain-text fallback, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRotating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sportsbot.log")
	logger := NewRotating(LevelInfo, path, 0, 0)
	if logger == nil {
		t.Fatal("NewRotating() returned nil")
	}
	logger.Info("rotating logger ready", nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "rotating logger ready") {
		t.Errorf("log file = %q, want the entry", data)
	}
}

func TestLogger_CloseLeavesWriterOpen(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	logger.Info("still writing", nil)
	if !strings.Contains(buf.String(), "still writing") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.minLevel, &buf)

			logger.log(tt.logLevel, "test", nil, nil)

			logged := buf.Len() > 0
			if logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("scrape.fetch")
	m.IncrCounter("scrape.fetch")
	m.AddCounter("scrape.fetch", 3)

	snapshot := m.GetSnapshot()
	counters := snapshot["counters"].(map[string]int64)

	if counters["scrape.fetch"] != 5 {
		t.Errorf("Counter = %v, want 5", counters["scrape.fetch"])
	}
	if m.Counter("scrape.fetch") != 5 {
		t.Errorf("Counter() = %v, want 5", m.Counter("scrape.fetch"))
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("teams.cached", 30)
	m.SetGauge("teams.cached", 32)

	snapshot := m.GetSnapshot()
	gauges := snapshot["gauges"].(map[string]float64)

	if gauges["teams.cached"] != 32 {
		t.Errorf("Gauge = %v, want 32", gauges["teams.cached"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("scrape.fetch", 100*time.Millisecond)
	m.RecordTiming("scrape.fetch", 200*time.Millisecond)
	m.RecordTiming("scrape.fetch", 150*time.Millisecond)

	snapshot := m.GetSnapshot()
	timings := snapshot["timings"].(map[string]map[string]interface{})

	fetch := timings["scrape.fetch"]
	if fetch["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", fetch["count"])
	}
	if fetch["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", fetch["min"])
	}
	if fetch["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", fetch["max"])
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(prev)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("package-level functions wrote %d lines, want 4", lines)
	}

	IncrCounter("test")
	AddCounter("test", 2)
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	if GetMetricsSnapshot() == nil {
		t.Error("GetMetricsSnapshot() returned nil")
	}
}
