package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedMatcher returns a matcher whose "today" is January 10th 2024.
func fixedMatcher() IterationMatcher {
	return IterationMatcher{
		Now: func() time.Time {
			return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestIterationMatcherAll(t *testing.T) {
	m := fixedMatcher()

	// @all matches everything, including items without an iteration.
	assert.True(t, m.Matches(nil, "@all"))
	assert.True(t, m.Matches(&IterationInfo{Title: "Sprint 1", StartDate: "2023-01-01"}, "@all"))
	assert.True(t, m.Matches(&IterationInfo{Title: "Sprint 1", StartDate: "garbage"}, "@all"))
}

func TestIterationMatcherRequiresIteration(t *testing.T) {
	m := fixedMatcher()

	// No @-token ever matches an item without an iteration.
	assert.False(t, m.Matches(nil, "@current"))
	assert.False(t, m.Matches(nil, "@previous"))
	assert.False(t, m.Matches(nil, "@current,@previous"))
	assert.False(t, m.Matches(nil, "Sprint 5"))
}

func TestIterationMatcherCurrent(t *testing.T) {
	m := fixedMatcher()

	testCases := []struct {
		name      string
		startDate string
		expected  bool
	}{
		{name: "Started today", startDate: "2024-01-10", expected: true},
		{name: "Started nine days ago", startDate: "2024-01-01", expected: true},
		{name: "Started thirteen days ago", startDate: "2023-12-28", expected: true},
		{name: "Started fourteen days ago is over", startDate: "2023-12-27", expected: false},
		{name: "Starts tomorrow", startDate: "2024-01-11", expected: false},
		{name: "Malformed date", startDate: "01/10/2024", expected: false},
		{name: "Empty date", startDate: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iter := &IterationInfo{Title: "Sprint X", StartDate: tc.startDate}
			assert.Equal(t, tc.expected, m.Matches(iter, "@current"))
		})
	}
}

func TestIterationMatcherPrevious(t *testing.T) {
	m := fixedMatcher()

	testCases := []struct {
		name      string
		startDate string
		expected  bool
	}{
		// Window is [today-28d, today-14d) = [2023-12-13, 2023-12-27).
		{name: "Start of window", startDate: "2023-12-13", expected: true},
		{name: "Middle of window", startDate: "2023-12-20", expected: true},
		{name: "End of window is exclusive", startDate: "2023-12-27", expected: false},
		{name: "Before window", startDate: "2023-12-12", expected: false},
		{name: "Current sprint", startDate: "2024-01-01", expected: false},
		{name: "Malformed date", startDate: "yesterday", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iter := &IterationInfo{Title: "Sprint X", StartDate: tc.startDate}
			assert.Equal(t, tc.expected, m.Matches(iter, "@previous"))
		})
	}
}

func TestIterationMatcherTitleMatch(t *testing.T) {
	m := fixedMatcher()
	iter := &IterationInfo{Title: "Sprint 5", StartDate: "2022-01-01"}

	assert.True(t, m.Matches(iter, "Sprint 5"))
	assert.False(t, m.Matches(iter, "Sprint 6"))
	assert.False(t, m.Matches(iter, "sprint 5"), "title match is case-sensitive")
}

func TestIterationMatcherCommaSeparated(t *testing.T) {
	m := fixedMatcher()

	// An old iteration that only matches by name.
	old := &IterationInfo{Title: "Sprint 5", StartDate: "2022-01-01"}
	assert.True(t, m.Matches(old, "@current,Sprint 5"))
	assert.True(t, m.Matches(old, " @current , Sprint 5 "), "tokens are whitespace-trimmed")
	assert.False(t, m.Matches(old, "@current,@previous"))

	// A current iteration matched by the first token.
	current := &IterationInfo{Title: "Sprint 9", StartDate: "2024-01-08"}
	assert.True(t, m.Matches(current, "@current,@previous"))
	assert.True(t, m.Matches(current, "@previous,@current"))
}

func TestIterationMatcherDefaultClock(t *testing.T) {
	// A zero matcher falls back to the wall clock: an iteration that
	// started today is always current.
	var m IterationMatcher
	today := time.Now().UTC().Format("2006-01-02")
	assert.True(t, m.Matches(&IterationInfo{Title: "Now", StartDate: today}, "@current"))
}
