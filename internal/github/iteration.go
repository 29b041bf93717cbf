package github

import (
	"strings"
	"time"
)

// sprintLengthDays is the assumed iteration length. The board's real
// configuration is not consulted; uniform two-week sprints are assumed
// for the @current and @previous windows.
const sprintLengthDays = 14

// IterationInfo carries an item's iteration field value. A nil
// *IterationInfo means the item has no iteration assigned.
type IterationInfo struct {
	Title string

	// StartDate is the iteration's start as "YYYY-MM-DD".
	StartDate string
}

// IterationMatcher decides whether an item's iteration satisfies a
// filter expression.
//
// Supported filter formats:
//   - "@all" - matches everything (no filtering)
//   - "@current" - the iteration containing today's date
//   - "@previous" - the iteration before the current one
//   - "@current,@previous" - either of the two
//   - any other token - exact match on the iteration title
//
// A comma-separated expression matches when any of its tokens match.
type IterationMatcher struct {
	// Now supplies the current time; defaults to time.Now when nil.
	Now func() time.Time
}

// Matches reports whether iter satisfies the filter expression. Items
// without an iteration only ever match "@all".
func (m IterationMatcher) Matches(iter *IterationInfo, filter string) bool {
	if filter == "@all" {
		return true
	}

	for _, token := range strings.Split(filter, ",") {
		token = strings.TrimSpace(token)

		switch token {
		case "@current":
			if iter != nil && m.isCurrentIteration(iter.StartDate) {
				return true
			}
		case "@previous":
			// Without the board's full iteration list, "previous" is a
			// heuristic: an iteration that started between one and two
			// sprint lengths ago. Irregular sprint boundaries can
			// misclassify here.
			if iter != nil && m.isPreviousIteration(iter.StartDate) {
				return true
			}
		default:
			if iter != nil && iter.Title == token {
				return true
			}
		}
	}

	return false
}

// isCurrentIteration reports whether today falls inside
// [start, start+sprintLengthDays).
func (m IterationMatcher) isCurrentIteration(startDate string) bool {
	start, ok := parseStartDate(startDate)
	if !ok {
		return false
	}

	today := m.today()
	return !today.Before(start) && today.Before(start.AddDate(0, 0, sprintLengthDays))
}

// isPreviousIteration reports whether the iteration started between
// two sprint lengths and one sprint length ago.
func (m IterationMatcher) isPreviousIteration(startDate string) bool {
	start, ok := parseStartDate(startDate)
	if !ok {
		return false
	}

	today := m.today()
	windowStart := today.AddDate(0, 0, -2*sprintLengthDays)
	windowEnd := today.AddDate(0, 0, -sprintLengthDays)
	return !start.Before(windowStart) && start.Before(windowEnd)
}

func (m IterationMatcher) today() time.Time {
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// parseStartDate parses an ISO "YYYY-MM-DD" date. Malformed dates are
// treated as "no match" by the date-based tokens, never as errors.
func parseStartDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	start, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}
