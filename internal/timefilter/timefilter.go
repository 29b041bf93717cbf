// Package timefilter parses human-friendly elapsed-time expressions
// into absolute instants. An expression answers the question "issues
// closed since when?": the returned time is the inclusive lower bound
// of the window.
package timefilter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Parse converts a time filter expression into an absolute instant.
//
// Supported formats:
//   - "7d", "24h", "30m", "2w" - relative durations before now
//   - "yesterday" - start of yesterday
//   - "today" - start of today
//   - "this-week" - start of the current week (Monday)
//   - "this-month" - start of the current month
//
// Matching is case-insensitive and surrounding whitespace is ignored.
func Parse(input string) (time.Time, error) {
	return parseAt(input, time.Now())
}

// parseAt is Parse with an explicit current time, so keyword
// arithmetic is deterministic under test. Keywords resolve against
// now's location.
func parseAt(input string, now time.Time) (time.Time, error) {
	cleaned := strings.ToLower(strings.TrimSpace(input))

	switch cleaned {
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now.AddDate(0, 0, -1)), nil
	case "this-week":
		// Monday-based week
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return startOfDay(now.AddDate(0, 0, -daysSinceMonday)), nil
	case "this-month":
		year, month, _ := now.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), nil
	}

	if d, ok := parseDuration(cleaned); ok {
		return now.Add(-d), nil
	}

	return time.Time{}, fmt.Errorf(
		"invalid time filter: %q. Use formats like: 7d, 24h, 30m, yesterday, today, this-week, this-month",
		input)
}

// parseDuration handles the "<integer><unit>" form, e.g. "7d",
// "24h", "2weeks". The unit follows the number directly.
func parseDuration(input string) (time.Duration, bool) {
	if input == "" {
		return 0, false
	}

	// Split at the first alphabetic rune.
	split := len(input)
	for i, r := range input {
		if unicode.IsLetter(r) {
			split = i
			break
		}
	}
	numStr, unit := input[:split], input[split:]

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, false
	}

	switch unit {
	case "d", "day", "days":
		return time.Duration(num) * 24 * time.Hour, true
	case "h", "hour", "hours":
		return time.Duration(num) * time.Hour, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Duration(num) * time.Minute, true
	case "w", "week", "weeks":
		return time.Duration(num) * 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
