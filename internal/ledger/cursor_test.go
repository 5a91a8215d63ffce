package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorFallbackWhenMissing(t *testing.T) {
	c := NewCursor(filepath.Join(t.TempDir(), "last_run.txt"))
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	got := c.Load(now, 48*time.Hour)
	assert.True(t, got.Equal(now.Add(-48*time.Hour)))
}

func TestCursorFallbackWhenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_run.txt")
	require.NoError(t, os.WriteFile(path, []byte("yesterday-ish"), 0644))

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	got := NewCursor(path).Load(now, 48*time.Hour)
	assert.True(t, got.Equal(now.Add(-48*time.Hour)))
}

func TestCursorRoundTrip(t *testing.T) {
	c := NewCursor(filepath.Join(t.TempDir(), "last_run.txt"))
	saved := time.Date(2024, 6, 9, 3, 15, 0, 0, time.UTC)
	require.NoError(t, c.Save(saved))

	got := c.Load(time.Now().UTC(), 48*time.Hour)
	assert.True(t, got.Equal(saved))
	assert.Equal(t, time.UTC, got.Location())
}

func TestCursorSaveOverwrites(t *testing.T) {
	c := NewCursor(filepath.Join(t.TempDir(), "last_run.txt"))
	first := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Save(first))
	require.NoError(t, c.Save(second))

	got := c.Load(time.Now().UTC(), time.Hour)
	assert.True(t, got.Equal(second))
}
