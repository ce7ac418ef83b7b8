package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/app"
)

func (c *CLI) newEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich [ingredients...]",
		Short: "Fetch nutrition profiles for un-enriched ingredient data",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			all, _ := cmd.Flags().GetBool("all")
			limit, _ := cmd.Flags().GetInt("limit")
			force, _ := cmd.Flags().GetBool("force")
			delay, _ := cmd.Flags().GetDuration("delay")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			writeReport, _ := cmd.Flags().GetBool("report")

			if all {
				args = nil
			}

			summary, err := c.app.Enrich(cmd.Context(), app.EnrichOptions{
				DryRun:      dryRun,
				Limit:       limit,
				Force:       force,
				Ingredients: args,
				Delay:       delay,
				OutputMode:  outputMode,
				Report:      writeReport,
			})
			if summary != nil {
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "enrichment: %d enriched, %d skipped, %d not found, %d failed (of %d)\n",
					summary.Enriched, summary.Skipped, summary.NotFound, summary.Failed, summary.Total)
			}
			return err
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Report what would be enriched without fetching or writing")
	cmd.Flags().Bool("all", false, "Enrich every discovered ingredient, ignoring any named arguments")
	cmd.Flags().IntP("limit", "l", 0, "Cap the number of ingredients fetched this run (0 = all)")
	cmd.Flags().BoolP("force", "f", false, "Re-fetch ingredients that already have profile data")
	cmd.Flags().Duration("delay", 0, "Override the spacing between upstream API requests")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear, or json")
	cmd.Flags().Bool("report", false, "Write a JSON run report under .scullery/reports")
	return cmd
}
