package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/app"
	"go.alchm.dev/scullery/internal/core/domain"
)

func (c *CLI) newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Run and manage batched fix campaigns",
	}

	cmd.AddCommand(c.newCampaignRunCmd())
	cmd.AddCommand(c.newCampaignStatusCmd())
	cmd.AddCommand(c.newCampaignResetCmd())

	return cmd
}

func (c *CLI) newCampaignRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [categories...]",
		Short: "Run a fix campaign over the targeted issue categories",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("campaign")
			batchSize, _ := cmd.Flags().GetInt("batch-size")
			maxFiles, _ := cmd.Flags().GetInt("max-files")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			confirm, _ := cmd.Flags().GetBool("confirm")
			noCheckpoint, _ := cmd.Flags().GetBool("no-checkpoint")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			writeReport, _ := cmd.Flags().GetBool("report")
			ci, _ := cmd.Flags().GetBool("ci")

			if ci {
				outputMode = "linear"
			}
			if !dryRun && !confirm {
				dryRun = true
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "preview only; pass --confirm to apply fixes")
			}

			summary, err := c.app.RunCampaign(cmd.Context(), app.CampaignOptions{
				Campaign:     name,
				Categories:   args,
				BatchSize:    batchSize,
				MaxFiles:     maxFiles,
				DryRun:       dryRun,
				NoCheckpoint: noCheckpoint,
				OutputMode:   outputMode,
				Report:       writeReport,
			})
			if summary != nil {
				printCampaignSummary(cmd, summary)
			}
			return err
		},
	}

	cmd.Flags().String("campaign", "", "Named campaign from scullery.yaml")
	cmd.Flags().IntP("batch-size", "b", 0, "Files fixed between validation runs")
	cmd.Flags().IntP("max-files", "m", 0, "Cap on total files touched this run (0 = no cap)")
	cmd.Flags().BoolP("dry-run", "n", false, "Plan and report without modifying files")
	cmd.Flags().BoolP("confirm", "y", false, "Apply fixes; without it the run is a preview")
	cmd.Flags().Bool("no-checkpoint", false, "Ignore saved progress and process every targeted file")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear, or json")
	cmd.Flags().Bool("report", false, "Write a markdown run report under .scullery/reports")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}

func printCampaignSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "campaign %s: %s, %d issue(s) fixed across %d batch(es)\n",
		summary.Campaign, summary.Status, summary.TotalFixed(), len(summary.Batches))
}

func (c *CLI) newCampaignStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <campaign>",
		Short: "Show the saved checkpoint for a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := c.app.CampaignStatus(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if progress == nil {
				_, _ = fmt.Fprintf(out, "no checkpoint for %q\n", args[0])
				return nil
			}

			_, _ = fmt.Fprintf(out, "campaign %s: %d file(s) processed, %d issue(s) fixed, last update %s\n",
				progress.Name,
				len(progress.ProcessedFiles),
				progress.IssuesFixed,
				progress.LastUpdateTime.Format("2006-01-02 15:04:05"),
			)
			return nil
		},
	}
}

func (c *CLI) newCampaignResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <campaign>",
		Short: "Discard the saved checkpoint for a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.CampaignReset(args[0])
		},
	}
}
