package teamcache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pfrederiksen/plaintext-sports/internal/logger"
)

// FileName is the cache document inside the data directory.
const FileName = "team_cache.json"

// FileStore keeps every entry in one JSON object on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates the data directory if needed and returns a store
// backed by dataDir/team_cache.json.
func NewFileStore(dataDir string) (*FileStore, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{path: filepath.Join(dataDir, FileName)}, nil
}

// Path returns the cache file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (Entry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.load()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := all[key]
	return e, ok, nil
}

func (f *FileStore) Put(_ context.Context, key string, entry Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.load()
	if err != nil {
		return err
	}
	all[key] = entry

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding team cache: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing team cache: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing team cache: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

// load reads the whole document. A missing file is empty; an unreadable one
// is logged and treated as empty so the next Put rewrites it.
func (f *FileStore) load() (map[string]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Entry), nil
		}
		return nil, fmt.Errorf("reading team cache: %w", err)
	}

	all := make(map[string]Entry)
	if err := json.Unmarshal(data, &all); err != nil {
		logger.Warn("Team cache file is corrupt, starting empty", logger.Fields{
			"path":  f.path,
			"error": err.Error(),
		})
		return make(map[string]Entry), nil
	}
	return all, nil
}
