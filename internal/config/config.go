// Package config provides centralized configuration management for the application.
package config

import (
	"github.com/spf13/viper"
)

// Default custom field names on a GitHub Projects V2 board. Boards
// that renamed their status or iteration fields override these via
// DONER_STATUS_FIELD and DONER_ITERATION_FIELD.
const (
	DefaultStatusField    = "Status"
	DefaultIterationField = "Iteration"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub GitHubConfig
	Board  BoardConfig
	LLM    LLMConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	// Token is an access token taken from the environment. It takes
	// precedence over any credential stored in the system keychain.
	Token string

	// Domain is the GitHub host to talk to, "github.com" unless a
	// GitHub Enterprise instance is configured.
	Domain string
}

// BoardConfig holds the names of the custom fields the fetcher reads
// from the project board.
type BoardConfig struct {
	StatusField    string
	IterationField string
}

// LLMConfig holds configuration for the external summarizer.
type LLMConfig struct {
	// Command overrides autodetection of the LLM CLI (e.g., "gemini -p").
	Command string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("board.status_field", "DONER_STATUS_FIELD")
	v.BindEnv("board.iteration_field", "DONER_ITERATION_FIELD")
	v.BindEnv("llm.command", "DONER_LLM_CMD")

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("board.status_field", DefaultStatusField)
	v.SetDefault("board.iteration_field", DefaultIterationField)

	config := &Config{
		GitHub: GitHubConfig{
			Token:  v.GetString("github.token"),
			Domain: v.GetString("github.domain"),
		},
		Board: BoardConfig{
			StatusField:    v.GetString("board.status_field"),
			IterationField: v.GetString("board.iteration_field"),
		},
		LLM: LLMConfig{
			Command: v.GetString("llm.command"),
		},
	}

	// A missing token is not an error here: commands that need one
	// resolve it through the auth package, which also consults the
	// system keychain and reports actionable guidance.
	return config, nil
}
