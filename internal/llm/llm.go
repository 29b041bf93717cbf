// Package llm turns a formatted issue list into a prose summary by
// shelling out to an external LLM command-line tool.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/danielolaszy/doner/internal/logging"
)

const systemPrompt = `You are a technical writer summarizing completed software development tasks.
Your goal is to create clear, concise summaries that highlight:
- What was accomplished
- The impact or value of the work
- Any patterns or themes across multiple tasks

Write in a professional but accessible tone. Group related work together when it makes sense.
Use bullet points for clarity. Keep the summary focused and avoid unnecessary jargon.
Include links to the issues in the summary if available.
Use heading 4 for each theme and avoid using heading 1 to 3. Do not use bold formatting on headings.`

// Client invokes an external LLM CLI. The prompt is passed as the
// final command argument.
type Client struct {
	command string
	args    []string
}

// NewClient builds a client for the given command override (e.g. the
// value of DONER_LLM_CMD). When the override is empty, known CLI tools
// are autodetected on PATH: gemini first, then cursor.
func NewClient(override string) (*Client, error) {
	if override != "" {
		parts := strings.Fields(override)
		if len(parts) == 0 {
			return nil, fmt.Errorf("LLM command override is empty")
		}
		return &Client{command: parts[0], args: parts[1:]}, nil
	}

	if _, err := exec.LookPath("gemini"); err == nil {
		return &Client{command: "gemini", args: []string{"-p"}}, nil
	}
	if _, err := exec.LookPath("cursor"); err == nil {
		return &Client{command: "cursor", args: []string{"--prompt"}}, nil
	}

	return nil, fmt.Errorf(
		"no LLM CLI tool found. Install one of:\n  - gemini-cli (https://github.com/google-gemini/gemini-cli)\n  - cursor CLI\nOr set DONER_LLM_CMD to a custom command")
}

// Summarize runs the external tool over the formatted issue list and
// returns its output.
func (c *Client) Summarize(ctx context.Context, formattedIssues string) (string, error) {
	prompt := fmt.Sprintf(
		"%s\n\nSummarize the following completed tasks:\n\n%s\n\nProvide a rich summary that:\n1. Groups related work into themes\n2. Highlights key accomplishments\n3. Notes any significant patterns",
		systemPrompt, formattedIssues)

	args := append(append([]string(nil), c.args...), prompt)
	cmd := exec.CommandContext(ctx, c.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("invoking llm command", "command", c.command)

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %s", c.command, msg)
		}
		return "", fmt.Errorf("%s failed: %w", c.command, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
