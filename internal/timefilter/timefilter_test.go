package timefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelativeDurations(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{name: "Days short", input: "7d", expected: 7 * 24 * time.Hour},
		{name: "Days long", input: "7days", expected: 7 * 24 * time.Hour},
		{name: "Hours short", input: "24h", expected: 24 * time.Hour},
		{name: "Hours long", input: "2hours", expected: 2 * time.Hour},
		{name: "Minutes short", input: "30m", expected: 30 * time.Minute},
		{name: "Minutes min", input: "30min", expected: 30 * time.Minute},
		{name: "Weeks short", input: "2w", expected: 2 * 7 * 24 * time.Hour},
		{name: "Weeks long", input: "1week", expected: 7 * 24 * time.Hour},
		{name: "Uppercase", input: "7D", expected: 7 * 24 * time.Hour},
		{name: "Surrounding whitespace", input: "  7d  ", expected: 7 * 24 * time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Parse(tc.input)
			require.NoError(t, err)

			expected := time.Now().Add(-tc.expected)
			assert.WithinDuration(t, expected, result, time.Second)
		})
	}
}

func TestParseKeywords(t *testing.T) {
	// Wednesday, January 10th 2024, mid-afternoon.
	now := time.Date(2024, time.January, 10, 15, 42, 7, 0, time.Local)

	testCases := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "Today",
			input:    "today",
			expected: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "Yesterday",
			input:    "yesterday",
			expected: time.Date(2024, time.January, 9, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "This week starts on Monday",
			input:    "this-week",
			expected: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "This month",
			input:    "this-month",
			expected: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "Keyword is case-insensitive",
			input:    "TODAY",
			expected: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := parseAt(tc.input, now)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(result), "expected %v, got %v", tc.expected, result)
		})
	}
}

func TestParseThisWeekOnMonday(t *testing.T) {
	// A Monday must resolve to its own midnight, not the week before.
	monday := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.Local)

	result, err := parseAt("this-week", monday)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local).Equal(result))
}

func TestParseInvalidInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Random token", input: "invalid-token"},
		{name: "Empty", input: ""},
		{name: "Unknown unit", input: "7y"},
		{name: "No number", input: "days"},
		{name: "Fractional number", input: "1.5d"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid time filter")
		})
	}
}
