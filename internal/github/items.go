package github

import (
	"context"
	"fmt"
	"time"

	graphql "github.com/cli/shurcooL-graphql"

	"github.com/danielolaszy/doner/internal/logging"
	"github.com/danielolaszy/doner/pkg/models"
)

// pageSize is the number of board items requested per GraphQL call.
const pageSize = 100

// Sentinel names recorded in FetchStats for items missing a field value.
const (
	noStatusSentinel    = "<no status>"
	noIterationSentinel = "<no iteration>"
)

// FetchOptions controls which board items FetchProjectIssues accepts.
type FetchOptions struct {
	// Column is the status column an item must sit in, compared by
	// exact string equality (e.g. "Done").
	Column string

	// Since, when set, rejects issues closed before this instant.
	// Issues without a closed timestamp are rejected too.
	Since *time.Time

	// IterationFilter restricts items by iteration (e.g. "@current",
	// "@current,@previous", an iteration title, or "@all"). Empty
	// disables iteration filtering.
	IterationFilter string

	// CollectStats records every observed column and iteration name
	// into the returned FetchStats for diagnostics.
	CollectStats bool
}

// FetchProjectIssues retrieves every issue in the given column of a
// project board, walking the items connection page by page. Issues are
// returned in server order. Any page failure aborts the whole fetch;
// there are no partial results and no retries.
func (c *Client) FetchProjectIssues(ctx context.Context, projectNodeID string, opts FetchOptions) ([]models.Issue, models.FetchStats, error) {
	var allIssues []models.Issue
	var cursor *string
	stats := models.NewFetchStats()

	for page := 1; ; page++ {
		issues, pageInfo, pageStats, err := c.fetchItemsPage(ctx, projectNodeID, cursor, opts)
		if err != nil {
			return nil, models.FetchStats{}, fmt.Errorf("failed to fetch project items (page %d): %w", page, err)
		}

		stats.Merge(pageStats)

		// The elapsed-time cutoff runs as a final pass over the page's
		// accepted items, counted separately from classification.
		for _, issue := range issues {
			if opts.Since != nil {
				if issue.ClosedAt == nil || issue.ClosedAt.Before(*opts.Since) {
					stats.FilteredByTime++
					continue
				}
			}
			allIssues = append(allIssues, issue)
		}

		if !pageInfo.HasNextPage {
			break
		}
		cursor = &pageInfo.EndCursor
	}

	logging.Debug("project fetch complete",
		"project", projectNodeID,
		"column", opts.Column,
		"accepted", len(allIssues),
		"total_items", stats.TotalItems)

	return allIssues, stats, nil
}

// pageInfo is the pagination cursor state of an items connection. The
// cursor is opaque and round-tripped verbatim.
type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// rawItem is a board item before classification.
type rawItem struct {
	ID         string          `json:"id"`
	IsArchived bool            `json:"isArchived"`
	Status     *fieldValue     `json:"status"`
	Iteration  *iterationValue `json:"iteration"`
	Content    *itemContent    `json:"content"`
}

// fieldValue is the polymorphic value of the status field. Only the
// single-select variant carries a usable name; every other variant
// (and absence) reads as "no value".
type fieldValue struct {
	Typename string  `json:"__typename"`
	Name     *string `json:"name"`
}

// columnName returns the resolved column name, if the value is a
// single-select with a name.
func (v *fieldValue) columnName() (string, bool) {
	if v == nil || v.Typename != "ProjectV2ItemFieldSingleSelectValue" || v.Name == nil {
		return "", false
	}
	return *v.Name, true
}

// iterationValue is the polymorphic value of the iteration field.
type iterationValue struct {
	Typename  string  `json:"__typename"`
	Title     *string `json:"title"`
	StartDate *string `json:"startDate"`
}

// info returns the iteration's title and start date, or nil when the
// value is not an iteration variant.
func (v *iterationValue) info() *IterationInfo {
	if v == nil || v.Typename != "ProjectV2ItemFieldIterationValue" {
		return nil
	}
	info := &IterationInfo{}
	if v.Title != nil {
		info.Title = *v.Title
	}
	if v.StartDate != nil {
		info.StartDate = *v.StartDate
	}
	return info
}

// itemContent is the polymorphic content union of a board item. Issue
// fields are only populated for the Issue variant; any other typename
// is opaque and classified as "not an issue".
type itemContent struct {
	Typename string     `json:"__typename"`
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	ClosedAt *time.Time `json:"closedAt"`

	Repository struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`

	Parent *struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		URL    string `json:"url"`
	} `json:"parent"`
}

// fetchItemsPage retrieves and classifies one page of project items.
func (c *Client) fetchItemsPage(ctx context.Context, projectNodeID string, cursor *string, opts FetchOptions) ([]models.Issue, pageInfo, models.FetchStats, error) {
	query := `query($projectId: ID!, $pageSize: Int!, $cursor: String, $statusField: String!, $iterationField: String!) {
		node(id: $projectId) {
			... on ProjectV2 {
				items(first: $pageSize, after: $cursor) {
					pageInfo {
						hasNextPage
						endCursor
					}
					nodes {
						id
						isArchived
						status: fieldValueByName(name: $statusField) {
							__typename
							... on ProjectV2ItemFieldSingleSelectValue {
								name
							}
						}
						iteration: fieldValueByName(name: $iterationField) {
							__typename
							... on ProjectV2ItemFieldIterationValue {
								title
								startDate
							}
						}
						content {
							__typename
							... on Issue {
								number
								title
								url
								closedAt
								repository {
									nameWithOwner
								}
								parent {
									number
									title
									url
								}
							}
						}
					}
				}
			}
		}
	}`

	variables := map[string]interface{}{
		"projectId":      graphql.ID(projectNodeID),
		"pageSize":       graphql.Int(pageSize),
		"cursor":         (*graphql.String)(nil),
		"statusField":    graphql.String(c.statusField),
		"iterationField": graphql.String(c.iterationField),
	}
	if cursor != nil {
		variables["cursor"] = graphql.String(*cursor)
	}

	var response struct {
		Node *struct {
			Items struct {
				PageInfo pageInfo  `json:"pageInfo"`
				Nodes    []rawItem `json:"nodes"`
			} `json:"items"`
		} `json:"node"`
	}

	if err := c.gql.DoWithContext(ctx, query, variables, &response); err != nil {
		return nil, pageInfo{}, models.FetchStats{}, err
	}

	if response.Node == nil {
		return nil, pageInfo{}, models.FetchStats{}, fmt.Errorf(
			"project %q not found: make sure the project node ID is correct", projectNodeID)
	}

	issues, stats := c.classifyItems(response.Node.Items.Nodes, opts)
	return issues, response.Node.Items.PageInfo, stats, nil
}

// classifyItems runs the per-item decision pipeline over one page.
// Predicates apply in a fixed order and the first rejection wins:
// archived, wrong column, iteration filter, content type.
func (c *Client) classifyItems(items []rawItem, opts FetchOptions) ([]models.Issue, models.FetchStats) {
	var issues []models.Issue
	stats := models.NewFetchStats()
	stats.TotalItems = len(items)

	for _, item := range items {
		// Archived items are hidden in the GitHub UI; skip them.
		if item.IsArchived {
			stats.Archived++
			continue
		}

		column, hasColumn := item.Status.columnName()
		if opts.CollectStats {
			if hasColumn {
				stats.MarkColumn(column)
			} else {
				stats.MarkColumn(noStatusSentinel)
			}
		}
		if !hasColumn || column != opts.Column {
			stats.WrongColumn++
			continue
		}

		iter := item.Iteration.info()
		if opts.CollectStats {
			if iter != nil {
				stats.MarkIteration(iter.Title)
			} else {
				stats.MarkIteration(noIterationSentinel)
			}
		}
		if opts.IterationFilter != "" && !c.matcher.Matches(iter, opts.IterationFilter) {
			stats.FilteredByIteration++
			continue
		}

		content := item.Content
		if content == nil || content.Typename != "Issue" {
			stats.NotIssue++
			continue
		}

		issue := models.Issue{
			Number:     content.Number,
			Title:      content.Title,
			URL:        content.URL,
			ClosedAt:   content.ClosedAt,
			Repository: content.Repository.NameWithOwner,
		}
		if content.Parent != nil {
			issue.Parent = &models.ParentIssue{
				Number: content.Parent.Number,
				Title:  content.Parent.Title,
				URL:    content.Parent.URL,
			}
		}
		issues = append(issues, issue)
	}

	return issues, stats
}
