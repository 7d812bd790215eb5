package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural months (mixed case)",
			input:    "3 MoNtHs AgO",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "valid singular week (capitalized)",
			input:    "1 Week Ago",
			expected: fixedNow.AddDate(0, 0, -7),
		},
		{
			name:     "valid 10 days (upper case)",
			input:    "10 DAYS AGO",
			expected: fixedNow.AddDate(0, 0, -10),
		},
		{
			name:     "valid hours",
			input:    "36 hours ago",
			expected: fixedNow.Add(-36 * time.Hour),
		},
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
		{
			name:        "value overflows int",
			input:       "99999999999999999999999 days ago",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tResult, err := ParseRelativeTime(tt.input, fixedNow)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, tResult, "Parsed time mismatch")
			}
		})
	}
}

func TestParseTimeBound(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)

	tests := []struct {
		name      string
		input     string
		isEnd     bool
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "rfc3339 is converted to the location",
			input:    "2025-10-01T12:00:00Z",
			expected: time.Date(2025, 10, 1, 9, 0, 0, 0, loc),
		},
		{
			name:     "calendar day as start is midnight",
			input:    "2025-10-01",
			expected: time.Date(2025, 10, 1, 0, 0, 0, 0, loc),
		},
		{
			name:     "calendar day as end is the last millisecond",
			input:    "2025-10-01",
			isEnd:    true,
			expected: time.Date(2025, 10, 1, 23, 59, 59, int(999*time.Millisecond), loc),
		},
		{
			name:     "today as start",
			input:    "Today",
			expected: time.Date(2025, 11, 3, 0, 0, 0, 0, loc),
		},
		{
			name:     "relative",
			input:    "2 weeks ago",
			expected: fixedNow.In(loc).AddDate(0, 0, -14),
		},
		{
			name:      "garbage",
			input:     "last tuesday",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeBound(tt.input, fixedNow, loc, tt.isEnd)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

// FuzzParseRelativeTime fuzzes the ParseRelativeTime function with random inputs.
func FuzzParseRelativeTime(f *testing.F) {
	seeds := []string{
		"1 year ago",
		"2 months ago",
		"3 weeks ago",
		"4 days ago",
		"5 hours ago",
		"6 minutes ago",
		"10 years ago",
		"0 years ago", // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = ParseRelativeTime(input, time.Now())
	})
}

// FuzzParseTimeBound checks that arbitrary bounds never panic.
func FuzzParseTimeBound(f *testing.F) {
	for _, seed := range []string{"today", "2025-01-31", "2025-01-31T10:00:00Z", "3 days ago", ""} {
		f.Add(seed, false)
	}
	f.Fuzz(func(_ *testing.T, input string, isEnd bool) {
		_, _ = ParseTimeBound(input, fixedNow, time.UTC, isEnd)
	})
}
