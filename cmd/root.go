// Package cmd provides the command-line interface for the doner CLI tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doner",
	Short: "Summarize issues from a GitHub project board column",
	Long: `Doner fetches issues from a GitHub Projects V2 board column and turns
them into a report. It supports filtering by iteration and by how
recently issues were closed, plain-text and markdown output, grouping
by parent issue, and optional summarization through an external LLM
command-line tool.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(authCmd)
}
