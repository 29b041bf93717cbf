// Package github provides functionality for interacting with the
// GitHub GraphQL API, in particular Projects V2 boards.
package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"

	"github.com/danielolaszy/doner/internal/logging"
)

// nodeIDPrefix marks an already-canonical Projects V2 node ID.
const nodeIDPrefix = "PVT_"

// graphQLClient is the transport surface the client needs. Satisfied
// by *api.GraphQLClient; tests substitute a fake.
type graphQLClient interface {
	DoWithContext(ctx context.Context, query string, variables map[string]interface{}, response interface{}) error
}

// Config carries the per-board settings the client is constructed with.
// Zero values fall back to github.com and the default field names.
type Config struct {
	// Host is the GitHub host, e.g. "github.com" or a GHE domain.
	Host string

	// StatusField is the name of the single-select field holding the
	// board column (default "Status").
	StatusField string

	// IterationField is the name of the iteration field (default
	// "Iteration").
	IterationField string
}

// Client encapsulates the GitHub GraphQL API client.
type Client struct {
	gql            graphQLClient
	statusField    string
	iterationField string
	matcher        IterationMatcher
}

// NewClient creates a client authenticated with the given token.
func NewClient(token string, cfg Config) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}

	host := cfg.Host
	if host == "" {
		host = "github.com"
	}

	gql, err := api.NewGraphQLClient(api.ClientOptions{
		Host:      host,
		AuthToken: token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql client: %w", err)
	}

	logging.Debug("github client configured",
		"host", host,
		"token", logging.MaskSensitive(token),
		"status_field", cfg.StatusField,
		"iteration_field", cfg.IterationField)

	return newClient(gql, cfg), nil
}

// newClient wires a transport into a Client; split out so tests can
// inject a fake transport.
func newClient(gql graphQLClient, cfg Config) *Client {
	statusField := cfg.StatusField
	if statusField == "" {
		statusField = "Status"
	}
	iterationField := cfg.IterationField
	if iterationField == "" {
		iterationField = "Iteration"
	}

	return &Client{
		gql:            gql,
		statusField:    statusField,
		iterationField: iterationField,
	}
}

// ResolveProjectID turns a user-supplied project identifier into a
// canonical Projects V2 node ID.
//
// Accepted forms:
//   - a node ID starting with "PVT_", returned unchanged
//   - "owner/number" (e.g. "myorg/5"), looked up via the API
func (c *Client) ResolveProjectID(ctx context.Context, projectID string) (string, error) {
	if strings.HasPrefix(projectID, nodeIDPrefix) {
		return projectID, nil
	}

	parts := strings.Split(projectID, "/")
	if len(parts) != 2 {
		return "", fmt.Errorf(
			"invalid project ID format %q: use 'owner/number' (e.g., 'myorg/5') or a GraphQL node ID (starting with %q)",
			projectID, nodeIDPrefix)
	}

	owner := parts[0]
	number, err := strconv.Atoi(parts[1])
	if err != nil || number <= 0 {
		return "", fmt.Errorf("invalid project number %q: must be a positive integer", parts[1])
	}

	// Try organization-owned first, then fall back to user-owned. Any
	// org-side failure (not found, no access) is deliberately
	// swallowed; the user lookup's error carries the guidance.
	id, orgErr := c.lookupOrgProject(ctx, owner, number)
	if orgErr == nil {
		return id, nil
	}
	logging.Debug("organization project lookup failed, trying user",
		"owner", owner, "number", number, "error", orgErr)

	return c.lookupUserProject(ctx, owner, number)
}

func (c *Client) lookupOrgProject(ctx context.Context, org string, number int) (string, error) {
	query := `query($login: String!, $number: Int!) {
		organization(login: $login) {
			projectV2(number: $number) {
				id
			}
		}
	}`

	variables := map[string]interface{}{
		"login":  graphql.String(org),
		"number": graphql.Int(number),
	}

	var response struct {
		Organization *struct {
			ProjectV2 *struct {
				ID string
			}
		}
	}

	if err := c.gql.DoWithContext(ctx, query, variables, &response); err != nil {
		return "", fmt.Errorf("organization project lookup failed: %w", err)
	}

	if response.Organization == nil {
		return "", fmt.Errorf("organization %q not found or not accessible", org)
	}
	if response.Organization.ProjectV2 == nil {
		return "", fmt.Errorf("project #%d not found in organization %q", number, org)
	}

	return response.Organization.ProjectV2.ID, nil
}

func (c *Client) lookupUserProject(ctx context.Context, user string, number int) (string, error) {
	query := `query($login: String!, $number: Int!) {
		user(login: $login) {
			projectV2(number: $number) {
				id
			}
		}
	}`

	variables := map[string]interface{}{
		"login":  graphql.String(user),
		"number": graphql.Int(number),
	}

	var response struct {
		User *struct {
			ProjectV2 *struct {
				ID string
			}
		}
	}

	if err := c.gql.DoWithContext(ctx, query, variables, &response); err != nil {
		return "", fmt.Errorf(
			"project %s/%d not found: %w (check the owner, the project number, and that the token has the 'read:project' scope)",
			user, number, err)
	}

	if response.User == nil || response.User.ProjectV2 == nil {
		return "", fmt.Errorf(
			"project %s/%d not found: check the owner, the project number, and that the token has the 'read:project' scope",
			user, number)
	}

	return response.User.ProjectV2.ID, nil
}
