package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// diskSnapshot is the persisted fallback blob, one file per currency.
type diskSnapshot struct {
	FetchedAt time.Time `json:"fetched_at"`
	Events    []Event   `json:"events"`
}

// diskStore persists calendar snapshots under a cache directory so a
// restart during an upstream outage still has timing data to serve.
type diskStore struct {
	dir string
}

func (s diskStore) path(currency string) string {
	return filepath.Join(s.dir, "calendar-"+strings.ToLower(currency)+".json")
}

// load reads the persisted snapshot. Missing or corrupt files are
// reported as cache-empty, never as an error.
func (s diskStore) load(currency string) (diskSnapshot, bool) {
	data, err := os.ReadFile(s.path(currency))
	if err != nil {
		return diskSnapshot{}, false
	}
	var snap diskSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return diskSnapshot{}, false
	}
	return snap, true
}

func (s diskStore) save(currency string, snap diskSnapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(currency), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
