package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/core/domain"
)

func (c *CLI) newReadinessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Evaluate deployment quality gates and write the CI report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			exitCode, _ := cmd.Flags().GetBool("exit-code")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			if asJSON {
				outputMode = "json"
			}

			result, err := c.app.Readiness(cmd.Context(), outputMode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result.Report); err != nil {
					return err
				}
			} else {
				printReadinessReport(cmd, result.Report)
				if result.ReportPath != "" {
					_, _ = fmt.Fprintf(out, "report written to %s\n", result.ReportPath)
				}
			}

			if exitCode && !result.Report.Ready {
				return domain.ErrNotReady
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Emit the report as JSON")
	cmd.Flags().Bool("exit-code", false, "Exit non-zero when not ready to deploy")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear, or json")
	return cmd
}

func printReadinessReport(cmd *cobra.Command, report *domain.ReadinessReport) {
	out := cmd.OutOrStdout()

	for _, result := range report.Results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
			if !result.Required {
				status = "WARN"
			}
		}
		_, _ = fmt.Fprintf(out, "%-6s %-20s errors=%d warnings=%d\n",
			status, result.Gate, result.Errors, result.Warnings)
	}

	if report.Ready {
		_, _ = fmt.Fprintln(out, "ready to deploy")
	} else {
		_, _ = fmt.Fprintln(out, "not ready to deploy")
	}
}
