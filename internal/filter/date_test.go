package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "ISO with Z suffix",
			raw:      "2024-01-01T00:00:00Z",
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "ISO with explicit offset converts to UTC",
			raw:      "2024-01-01T05:30:00+05:30",
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "ISO without zone assumed UTC",
			raw:      "2024-03-15T12:00:00",
			expected: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			raw:      "2024-03-15",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "numeric epoch",
			raw:      float64(1700000000),
			expected: time.Unix(1700000000, 0).UTC(),
		},
		{
			name:     "string epoch",
			raw:      "1700000000",
			expected: time.Unix(1700000000, 0).UTC(),
		},
		{
			name:    "nil is missing",
			raw:     nil,
			wantErr: true,
		},
		{
			name:    "empty string is missing",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "garbage string",
			raw:     "next tuesday",
			wantErr: true,
		},
		{
			name:    "unsupported type",
			raw:     []string{"2024"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, got.IsZero(), "failed parse must not yield a sentinel time")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %v, want %v", got, tt.expected)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateMissingVsMalformed(t *testing.T) {
	_, err := ParseDate(nil)
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = ParseDate("   ")
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = ParseDate("not-a-date")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingDate)
}
