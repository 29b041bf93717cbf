package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/doner/internal/auth"
	"github.com/danielolaszy/doner/internal/config"
	"github.com/danielolaszy/doner/internal/github"
	"github.com/danielolaszy/doner/internal/llm"
	"github.com/danielolaszy/doner/internal/logging"
	"github.com/danielolaszy/doner/internal/output"
	"github.com/danielolaszy/doner/internal/timefilter"
)

var (
	summarizeColumn    string
	summarizeSince     string
	summarizeIteration string
	summarizeFormat    string
	summarizeWrap      bool
	summarizeAI        bool
	summarizeDebug     bool
)

// summarizeCmd fetches issues from one board column and prints them,
// optionally through the external summarizer.
var summarizeCmd = &cobra.Command{
	Use:     "summarize <project>",
	Aliases: []string{"sum"},
	Short:   "Fetch and summarize issues from a project board column",
	Long: `Fetch issues from a GitHub Projects V2 board column and print a report.

The project is identified either as 'owner/number' (e.g. 'myorg/5') or
as a GraphQL node ID (starting with 'PVT_'). Organization-owned
projects are tried first, then user-owned ones.

Iteration filters accept '@current', '@previous', a comma-separated
combination, an exact iteration name, or '@all' to disable filtering.

Time filters accept relative durations (7d, 24h, 30m, 2w) and the
keywords today, yesterday, this-week, this-month.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd, args[0])
	},
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeColumn, "col", "c", "Done", "column name to fetch issues from")
	summarizeCmd.Flags().StringVarP(&summarizeSince, "since", "s", "", "filter issues by time (e.g., 7d, 24h, yesterday, this-week)")
	summarizeCmd.Flags().StringVarP(&summarizeIteration, "iteration", "i", "@current,@previous", "filter by iteration (e.g., @current, @previous, or an iteration name)")
	summarizeCmd.Flags().StringVarP(&summarizeFormat, "format", "f", "text", "output format (text or markdown)")
	summarizeCmd.Flags().BoolVarP(&summarizeWrap, "wrap", "w", false, "group issues by parent issue")
	summarizeCmd.Flags().BoolVar(&summarizeAI, "ai", false, "use an external LLM CLI to generate a rich summary")
	summarizeCmd.Flags().BoolVar(&summarizeDebug, "debug", false, "show debug information about fetched items")
}

func runSummarize(cmd *cobra.Command, projectID string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format, err := output.ParseFormat(summarizeFormat)
	if err != nil {
		return err
	}

	var since *time.Time
	if summarizeSince != "" {
		t, err := timefilter.Parse(summarizeSince)
		if err != nil {
			return err
		}
		since = &t
	}

	token, err := auth.ResolveToken(cfg.GitHub.Token)
	if err != nil {
		return err
	}

	client, err := github.NewClient(token, github.Config{
		Host:           cfg.GitHub.Domain,
		StatusField:    cfg.Board.StatusField,
		IterationField: cfg.Board.IterationField,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize github client: %w", err)
	}

	ctx := cmd.Context()

	projectNodeID, err := client.ResolveProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	logging.Info("fetching project issues",
		"project", projectNodeID,
		"column", summarizeColumn,
		"iteration", summarizeIteration)

	issues, stats, err := client.FetchProjectIssues(ctx, projectNodeID, github.FetchOptions{
		Column:          summarizeColumn,
		Since:           since,
		IterationFilter: summarizeIteration,
		CollectStats:    summarizeDebug,
	})
	if err != nil {
		return err
	}

	if summarizeDebug {
		fmt.Fprintf(os.Stderr, "Debug: project node ID %s, column %q, status field %q, iteration filter %q\n",
			projectNodeID, summarizeColumn, cfg.Board.StatusField, summarizeIteration)
		fmt.Fprintln(os.Stderr, output.FormatStats(stats, len(issues)))
		fmt.Fprintln(os.Stderr)
	}

	if len(issues) == 0 {
		fmt.Printf("No issues found in column %q\n", summarizeColumn)
		return nil
	}

	var report string
	if summarizeWrap {
		report = output.FormatGrouped(issues, format)
	} else {
		report = output.FormatList(issues, format)
	}

	if summarizeAI {
		llmClient, err := llm.NewClient(cfg.LLM.Command)
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, "Generating AI summary... ")
		summary, err := llmClient.Summarize(ctx, report)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed")
			return err
		}
		fmt.Fprintln(os.Stderr, "done")
		fmt.Fprintln(os.Stderr)

		fmt.Println(summary)
		return nil
	}

	fmt.Println(report)
	return nil
}
