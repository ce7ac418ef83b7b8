package commands

import (
	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove checkpoints, backups, and other metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backups, _ := cmd.Flags().GetBool("backups")
			cache, _ := cmd.Flags().GetBool("cache")
			reports, _ := cmd.Flags().GetBool("reports")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Checkpoints: true,
				Backups:     backups,
				Cache:       cache,
				Reports:     reports,
			}
			if all {
				opts = app.CleanOptions{
					Checkpoints: true,
					Backups:     true,
					Cache:       true,
					Reports:     true,
				}
			}
			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("backups", true, "Remove file backups")
	cmd.Flags().Bool("cache", false, "Remove the nutrition lookup cache")
	cmd.Flags().Bool("reports", false, "Remove generated run reports")
	cmd.Flags().Bool("all", false, "Remove all scullery metadata")
	return cmd
}
