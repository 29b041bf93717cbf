package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/doner/pkg/models"
)

func sampleIssues() []models.Issue {
	closed := time.Date(2024, time.January, 9, 10, 30, 0, 0, time.UTC)
	epic := &models.ParentIssue{
		Number: 99,
		Title:  "Big epic",
		URL:    "https://github.com/acme/app/issues/99",
	}
	return []models.Issue{
		{
			Number:     11,
			Title:      "Fix login crash",
			URL:        "https://github.com/acme/app/issues/11",
			ClosedAt:   &closed,
			Repository: "acme/app",
			Parent:     epic,
		},
		{
			Number:     12,
			Title:      "Add dark mode",
			URL:        "https://github.com/acme/app/issues/12",
			Repository: "acme/app",
		},
		{
			Number:     13,
			Title:      "Polish epic details",
			URL:        "https://github.com/acme/app/issues/13",
			Repository: "acme/app",
			Parent:     epic,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("Markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "html")
}

func TestFormatListText(t *testing.T) {
	out := FormatList(sampleIssues(), FormatText)

	assert.Contains(t, out, "Found 3 issue(s):")
	assert.Contains(t, out, "• [acme/app#11] Fix login crash")
	assert.Contains(t, out, "https://github.com/acme/app/issues/11")
	assert.Contains(t, out, "Parent: Big epic (https://github.com/acme/app/issues/99)")
	assert.Contains(t, out, "Closed: 2024-01-09 10:30")
	assert.False(t, strings.HasSuffix(out, "\n"), "output is trimmed")
}

func TestFormatListMarkdown(t *testing.T) {
	out := FormatList(sampleIssues(), FormatMarkdown)

	assert.Contains(t, out, "## Summary (3 issues)")
	assert.Contains(t, out, "- **[acme/app#11](https://github.com/acme/app/issues/11)**: Fix login crash")
	assert.Contains(t, out, "- Parent: [Big epic](https://github.com/acme/app/issues/99)")
}

func TestFormatGroupedText(t *testing.T) {
	out := FormatGrouped(sampleIssues(), FormatText)

	assert.Contains(t, out, "▶ Big epic")
	assert.Contains(t, out, "Completed:")
	assert.Contains(t, out, "• [acme/app#11] Fix login crash")
	assert.Contains(t, out, "• [acme/app#13] Polish epic details")
	assert.Contains(t, out, "▶ Standalone Issues")
	assert.Contains(t, out, "• [acme/app#12] Add dark mode")

	// Grouped children come before the standalone section.
	assert.Less(t, strings.Index(out, "Big epic"), strings.Index(out, "Standalone Issues"))
}

func TestFormatGroupedMarkdown(t *testing.T) {
	out := FormatGrouped(sampleIssues(), FormatMarkdown)

	assert.Contains(t, out, "### [Big epic](https://github.com/acme/app/issues/99)")
	assert.Contains(t, out, "- [acme/app#11](https://github.com/acme/app/issues/11): Fix login crash")
	assert.Contains(t, out, "### Standalone Issues")
	assert.Contains(t, out, "- [acme/app#12](https://github.com/acme/app/issues/12): Add dark mode")
}

func TestFormatGroupedParentOrderIsFirstSeen(t *testing.T) {
	issues := []models.Issue{
		{Number: 1, Title: "b1", Repository: "acme/app", Parent: &models.ParentIssue{Title: "Beta"}},
		{Number: 2, Title: "a1", Repository: "acme/app", Parent: &models.ParentIssue{Title: "Alpha"}},
		{Number: 3, Title: "b2", Repository: "acme/app", Parent: &models.ParentIssue{Title: "Beta"}},
	}

	out := FormatGrouped(issues, FormatText)
	assert.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Alpha"))
}

func TestFormatGroupedAllOrphans(t *testing.T) {
	issues := []models.Issue{
		{Number: 1, Title: "Solo", URL: "https://example.com/1", Repository: "acme/app"},
	}

	out := FormatGrouped(issues, FormatText)
	assert.Contains(t, out, "▶ Standalone Issues")
	assert.NotContains(t, out, "Completed:")
}

func TestFormatStats(t *testing.T) {
	stats := models.NewFetchStats()
	stats.TotalItems = 10
	stats.Archived = 2
	stats.WrongColumn = 3
	stats.NotIssue = 1
	stats.FilteredByIteration = 2
	stats.FilteredByTime = 1
	stats.MarkColumn("Done")
	stats.MarkColumn("In Progress")
	stats.MarkIteration("Sprint 5")

	out := FormatStats(stats, 1)

	assert.Contains(t, out, "Total items fetched")
	assert.Contains(t, out, "Columns seen: Done, In Progress")
	assert.Contains(t, out, "Iterations seen: Sprint 5")
	assert.Contains(t, out, "Final count")

	// Every counter line is aligned on the same colon column.
	lines := strings.Split(out, "\n")
	colon := strings.Index(lines[0], ":")
	for _, line := range lines[:7] {
		assert.Equal(t, colon, strings.Index(line, ":"), "line %q", line)
	}
}

func TestFormatStatsOmitsEmptySets(t *testing.T) {
	stats := models.NewFetchStats()
	stats.TotalItems = 1

	out := FormatStats(stats, 1)
	assert.NotContains(t, out, "Columns seen")
	assert.NotContains(t, out, "Iterations seen")
}
