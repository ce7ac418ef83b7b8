package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/core/domain"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [categories...]",
		Short: "Run the compiler and linter and summarize issues by category",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, _ := cmd.Flags().GetStringSlice("category")
			categories = append(categories, args...)
			asJSON, _ := cmd.Flags().GetBool("json")
			exitCode, _ := cmd.Flags().GetBool("exit-code")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			if asJSON {
				outputMode = "json"
			}

			issues, err := c.app.Analyze(cmd.Context(), categories, outputMode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(issuesJSON(issues)); err != nil {
					return err
				}
			} else {
				printIssueSummary(cmd, issues)
			}

			if exitCode && len(issues) > 0 {
				return domain.ErrIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().StringSliceP("category", "c", nil, "Only report issues in these categories")
	cmd.Flags().Bool("json", false, "Emit issues as JSON")
	cmd.Flags().Bool("exit-code", false, "Exit non-zero when issues are found")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear, or json")
	return cmd
}

func printIssueSummary(cmd *cobra.Command, issues []domain.Issue) {
	out := cmd.OutOrStdout()

	if len(issues) == 0 {
		_, _ = fmt.Fprintln(out, "No issues found.")
		return
	}

	byCategory := domain.GroupByCategory(issues)
	for _, cat := range domain.Categories() {
		if n := len(byCategory[cat]); n > 0 {
			_, _ = fmt.Fprintf(out, "%-18s %d\n", cat, n)
		}
	}
	_, _ = fmt.Fprintf(out, "%-18s %d\n", "total", len(issues))
}

// issueJSON is the stable wire shape for analyze --json.
type issueJSON struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

func issuesJSON(issues []domain.Issue) []issueJSON {
	out := make([]issueJSON, len(issues))
	for i, issue := range issues {
		out[i] = issueJSON{
			File:     issue.File.String(),
			Line:     issue.Line,
			Column:   issue.Column,
			Code:     issue.Code,
			Message:  issue.Message,
			Severity: string(issue.Severity),
			Source:   string(issue.Source),
			Category: string(issue.Category()),
		}
	}
	return out
}
