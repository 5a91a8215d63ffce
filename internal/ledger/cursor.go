package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cursor is the persisted end-of-previous-run timestamp used as the recency
// cutoff. It is the only cross-run state besides the ledger itself.
type Cursor struct {
	path string
}

func NewCursor(path string) *Cursor {
	return &Cursor{path: path}
}

// Load returns the previous run's cursor, or now minus the fallback window
// when the cursor file is missing or unreadable (first run, wiped data dir,
// corrupt file). Always UTC.
func (c *Cursor) Load(now time.Time, fallback time.Duration) time.Time {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return now.Add(-fallback).UTC()
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return now.Add(-fallback).UTC()
	}
	return t.UTC()
}

// Save overwrites the cursor with the given instant.
func (c *Cursor) Save(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create cursor directory: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(t.UTC().Format(time.RFC3339)), 0644); err != nil {
		return fmt.Errorf("write cursor: %w", err)
	}
	return nil
}
