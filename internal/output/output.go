// Package output renders fetched issues as plain text or markdown,
// either as a flat list or grouped by parent issue, plus the --debug
// diagnostics block.
package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/danielolaszy/doner/pkg/models"
)

// Format selects the rendering style.
type Format string

const (
	// FormatText renders a plain-text report.
	FormatText Format = "text"
	// FormatMarkdown renders a markdown report.
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("invalid format %q: use 'text' or 'markdown'", s)
	}
}

// FormatList renders issues as a flat list.
func FormatList(issues []models.Issue, format Format) string {
	if format == FormatMarkdown {
		return formatListMarkdown(issues)
	}
	return formatListText(issues)
}

// FormatGrouped renders issues clustered under their parent issue,
// with a trailing section for issues without one. Parent groups appear
// in the order their first child was fetched.
func FormatGrouped(issues []models.Issue, format Format) string {
	if format == FormatMarkdown {
		return formatGroupedMarkdown(issues)
	}
	return formatGroupedText(issues)
}

func formatListText(issues []models.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d issue(s):\n\n", len(issues))

	for _, issue := range issues {
		fmt.Fprintf(&b, "• [%s#%d] %s\n", issue.Repository, issue.Number, issue.Title)
		fmt.Fprintf(&b, "  %s\n", issue.URL)

		if issue.Parent != nil {
			fmt.Fprintf(&b, "  Parent: %s (%s)\n", issue.Parent.Title, issue.Parent.URL)
		}
		if issue.ClosedAt != nil {
			fmt.Fprintf(&b, "  Closed: %s\n", issue.ClosedAt.Format("2006-01-02 15:04"))
		}

		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatListMarkdown(issues []models.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Summary (%d issues)\n\n", len(issues))

	for _, issue := range issues {
		fmt.Fprintf(&b, "- **[%s#%d](%s)**: %s\n", issue.Repository, issue.Number, issue.URL, issue.Title)

		if issue.Parent != nil {
			fmt.Fprintf(&b, "  - Parent: [%s](%s)\n", issue.Parent.Title, issue.Parent.URL)
		}
		if issue.ClosedAt != nil {
			fmt.Fprintf(&b, "  - Closed: %s\n", issue.ClosedAt.Format("2006-01-02 15:04"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatGroupedText(issues []models.Issue) string {
	groups, orphans := groupByParent(issues)
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d issue(s):\n\n", len(issues))

	for _, group := range groups {
		fmt.Fprintf(&b, "▶ %s\n", group.parent.Title)
		fmt.Fprintf(&b, "  %s\n", group.parent.URL)
		b.WriteString("  Completed:\n")

		for _, issue := range group.issues {
			fmt.Fprintf(&b, "    • [%s#%d] %s\n", issue.Repository, issue.Number, issue.Title)
		}
		b.WriteString("\n")
	}

	if len(orphans) > 0 {
		b.WriteString("▶ Standalone Issues\n")
		for _, issue := range orphans {
			fmt.Fprintf(&b, "  • [%s#%d] %s\n", issue.Repository, issue.Number, issue.Title)
			fmt.Fprintf(&b, "    %s\n", issue.URL)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatGroupedMarkdown(issues []models.Issue) string {
	groups, orphans := groupByParent(issues)
	var b strings.Builder

	fmt.Fprintf(&b, "## Summary (%d issues)\n\n", len(issues))

	for _, group := range groups {
		fmt.Fprintf(&b, "### [%s](%s)\n\n", group.parent.Title, group.parent.URL)

		for _, issue := range group.issues {
			fmt.Fprintf(&b, "- [%s#%d](%s): %s\n", issue.Repository, issue.Number, issue.URL, issue.Title)
		}
		b.WriteString("\n")
	}

	if len(orphans) > 0 {
		b.WriteString("### Standalone Issues\n\n")
		for _, issue := range orphans {
			fmt.Fprintf(&b, "- [%s#%d](%s): %s\n", issue.Repository, issue.Number, issue.URL, issue.Title)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// parentGroup pairs a parent issue with its children, in fetch order.
type parentGroup struct {
	parent models.ParentIssue
	issues []models.Issue
}

func groupByParent(issues []models.Issue) ([]parentGroup, []models.Issue) {
	var groups []parentGroup
	var orphans []models.Issue
	index := make(map[string]int)

	for _, issue := range issues {
		if issue.Parent == nil {
			orphans = append(orphans, issue)
			continue
		}

		i, ok := index[issue.Parent.Title]
		if !ok {
			i = len(groups)
			index[issue.Parent.Title] = i
			groups = append(groups, parentGroup{parent: *issue.Parent})
		}
		groups[i].issues = append(groups[i].issues, issue)
	}

	return groups, orphans
}

// FormatStats renders the fetch diagnostics printed under --debug.
// Labels are padded to a common display width.
func FormatStats(stats models.FetchStats, accepted int) string {
	lines := []struct {
		label string
		value string
	}{
		{"Total items fetched", fmt.Sprintf("%d", stats.TotalItems)},
		{"Archived (skipped)", fmt.Sprintf("%d", stats.Archived)},
		{"Wrong column (skipped)", fmt.Sprintf("%d", stats.WrongColumn)},
		{"Not an issue (skipped)", fmt.Sprintf("%d", stats.NotIssue)},
		{"Filtered by iteration", fmt.Sprintf("%d", stats.FilteredByIteration)},
		{"Filtered by time", fmt.Sprintf("%d", stats.FilteredByTime)},
		{"Final count", fmt.Sprintf("%d", accepted)},
	}

	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l.label); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s: %s\n", padRight(l.label, width), l.value)
	}

	if len(stats.ColumnsSeen) > 0 {
		fmt.Fprintf(&b, "Columns seen: %s\n", strings.Join(stats.SortedColumns(), ", "))
	}
	if len(stats.IterationsSeen) > 0 {
		fmt.Fprintf(&b, "Iterations seen: %s\n", strings.Join(stats.SortedIterations(), ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
