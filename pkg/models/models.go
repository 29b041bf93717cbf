// Package models defines data structures shared across the application.
package models

import (
	"sort"
	"time"
)

// Issue represents a project board item that was accepted by the fetch
// pipeline: an unarchived issue sitting in the requested column.
type Issue struct {
	// Number is the issue number within its repository (e.g., 42)
	Number int

	// Title is the issue's title or summary
	Title string

	// URL is the web URL of the issue
	URL string

	// ClosedAt is the timestamp when the issue was closed, if it is closed
	ClosedAt *time.Time

	// Repository identifies the repository as "owner/name"
	Repository string

	// Parent references the grouping issue (epic) this issue belongs
	// to, when one is set on GitHub
	Parent *ParentIssue
}

// ParentIssue is a lightweight reference to a grouping issue. It is
// informational only; no relationship traversal happens beyond it.
type ParentIssue struct {
	Number int
	Title  string
	URL    string
}

// FetchStats aggregates per-item classification outcomes across a
// whole fetch. Every item lands in exactly one counter, so
//
//	TotalItems = Archived + WrongColumn + FilteredByIteration +
//	             NotIssue + (accepted + FilteredByTime)
//
// where accepted is the number of issues returned to the caller.
type FetchStats struct {
	TotalItems          int
	Archived            int
	WrongColumn         int
	NotIssue            int
	FilteredByTime      int
	FilteredByIteration int

	// ColumnsSeen and IterationsSeen record every observed column and
	// iteration name, including sentinel values for items without one.
	// Only populated when stat collection is enabled.
	ColumnsSeen    map[string]struct{}
	IterationsSeen map[string]struct{}
}

// NewFetchStats returns a FetchStats with initialized name sets.
func NewFetchStats() FetchStats {
	return FetchStats{
		ColumnsSeen:    make(map[string]struct{}),
		IterationsSeen: make(map[string]struct{}),
	}
}

// MarkColumn records an observed column name.
func (s *FetchStats) MarkColumn(name string) {
	if s.ColumnsSeen == nil {
		s.ColumnsSeen = make(map[string]struct{})
	}
	s.ColumnsSeen[name] = struct{}{}
}

// MarkIteration records an observed iteration name.
func (s *FetchStats) MarkIteration(name string) {
	if s.IterationsSeen == nil {
		s.IterationsSeen = make(map[string]struct{})
	}
	s.IterationsSeen[name] = struct{}{}
}

// Merge adds the counters of other into s and unions the observed-name
// sets. Used to fold per-page stats into the run total.
func (s *FetchStats) Merge(other FetchStats) {
	s.TotalItems += other.TotalItems
	s.Archived += other.Archived
	s.WrongColumn += other.WrongColumn
	s.NotIssue += other.NotIssue
	s.FilteredByTime += other.FilteredByTime
	s.FilteredByIteration += other.FilteredByIteration
	for name := range other.ColumnsSeen {
		s.MarkColumn(name)
	}
	for name := range other.IterationsSeen {
		s.MarkIteration(name)
	}
}

// SortedColumns returns the observed column names in sorted order.
func (s *FetchStats) SortedColumns() []string {
	return sortedKeys(s.ColumnsSeen)
}

// SortedIterations returns the observed iteration names in sorted order.
func (s *FetchStats) SortedIterations() []string {
	return sortedKeys(s.IterationsSeen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
