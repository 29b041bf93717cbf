// Package auth manages the GitHub credential: storage in the system
// keychain, resolution at runtime, and interactive login.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/manifoldco/promptui"
	"github.com/zalando/go-keyring"

	"github.com/danielolaszy/doner/internal/logging"
)

// Keychain coordinates for the stored token.
const (
	keyringService = "doner-cli"
	keyringAccount = "github-token"
)

// StoreToken saves a GitHub token in the system keychain.
func StoreToken(token string) error {
	if err := keyring.Set(keyringService, keyringAccount, token); err != nil {
		return fmt.Errorf("failed to store token in keychain: %w", err)
	}
	return nil
}

// StoredToken retrieves the token from the system keychain.
func StoredToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token from keychain: %w", err)
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting a token that is not
// there is not an error.
func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringAccount)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from keychain: %w", err)
	}
	return nil
}

// HasToken reports whether a token is stored in the keychain.
func HasToken() bool {
	_, err := keyring.Get(keyringService, keyringAccount)
	return err == nil
}

// ResolveToken returns the token to use for API calls. An environment
// token (passed in from configuration) wins over the keychain.
func ResolveToken(envToken string) (string, error) {
	if envToken != "" {
		logging.Debug("using token from environment", "token", logging.MaskSensitive(envToken))
		return envToken, nil
	}

	token, err := StoredToken()
	if err != nil {
		return "", fmt.Errorf(
			"no GitHub token found. Either:\n  1. Run 'doner auth login' to authenticate\n  2. Set the GITHUB_TOKEN environment variable")
	}
	return token, nil
}

// InteractiveLogin prompts for a personal access token with masked
// input and returns the trimmed value.
func InteractiveLogin() (string, error) {
	fmt.Println("Paste your GitHub personal access token.")
	fmt.Println("(Create one at https://github.com/settings/tokens with 'read:project' and 'repo' scopes)")
	fmt.Println()

	prompt := promptui.Prompt{
		Label: "Token",
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("token cannot be empty")
			}
			return nil
		},
	}

	token, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(token), nil
}

// ValidateToken checks a token against the API and returns the login
// of the authenticated user.
func ValidateToken(ctx context.Context, token, host string) (string, error) {
	if host == "" {
		host = "github.com"
	}

	gql, err := api.NewGraphQLClient(api.ClientOptions{
		Host:      host,
		AuthToken: token,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create graphql client: %w", err)
	}

	var response struct {
		Viewer struct {
			Login string
		}
	}

	if err := gql.DoWithContext(ctx, `query { viewer { login } }`, nil, &response); err != nil {
		return "", fmt.Errorf("invalid token or authentication failed: %w", err)
	}

	return response.Viewer.Login, nil
}
