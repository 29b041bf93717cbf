package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/doner/internal/auth"
	"github.com/danielolaszy/doner/internal/config"
	"github.com/danielolaszy/doner/internal/logging"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with GitHub",
}

var (
	authLoginToken          string
	authLoginSkipValidation bool
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to GitHub (interactive)",
	Long: `Store a GitHub personal access token in the system keychain.

The token needs the 'read:project' and 'repo' scopes. Without
--with-token, the token is read from an interactive masked prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := authLoginToken
		if token == "" {
			var err error
			token, err = auth.InteractiveLogin()
			if err != nil {
				return err
			}
		}

		if authLoginSkipValidation {
			fmt.Println("Skipping validation (test mode)")
		} else {
			fmt.Print("Validating token... ")

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			username, err := auth.ValidateToken(cmd.Context(), token, cfg.GitHub.Domain)
			if err != nil {
				fmt.Println("failed")
				return err
			}
			fmt.Println("OK")
			defer fmt.Printf("Logged in as %s\n", username)
		}

		fmt.Print("Storing token... ")
		if err := auth.StoreToken(token); err != nil {
			fmt.Println("failed")
			return err
		}
		fmt.Println("OK")

		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !auth.HasToken() {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := auth.DeleteToken(); err != nil {
			return err
		}
		fmt.Println("Logged out. Token removed from keychain.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check authentication status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cfg.GitHub.Token != "" {
			fmt.Println("Using token from GITHUB_TOKEN environment variable")
			return nil
		}

		if !auth.HasToken() {
			fmt.Println("Not logged in.")
			fmt.Println("Run 'doner auth login' to authenticate.")
			return nil
		}

		token, err := auth.StoredToken()
		if err != nil {
			return err
		}

		username, err := auth.ValidateToken(cmd.Context(), token, cfg.GitHub.Domain)
		if err != nil {
			logging.Debug("stored token validation failed", "error", err)
			fmt.Println("Token found in keychain but appears invalid or expired.")
			fmt.Println("Run 'doner auth login' to re-authenticate.")
			return nil
		}

		fmt.Printf("Logged in as %s (token stored in keychain)\n", username)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&authLoginToken, "with-token", "", "provide token directly instead of interactive prompt")
	authLoginCmd.Flags().BoolVar(&authLoginSkipValidation, "skip-validation", false, "skip token validation")
	_ = authLoginCmd.Flags().MarkHidden("skip-validation")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}
