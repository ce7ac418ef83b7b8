package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/app"
)

func (c *CLI) newConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Console statement tooling",
	}
	cmd.AddCommand(c.newConsoleMigrateCmd())
	return cmd
}

func (c *CLI) newConsoleMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [paths...]",
		Short: "Replace console statements with structured logger calls",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			summary, err := c.app.MigrateConsole(cmd.Context(), dryRun, args)
			if summary != nil {
				printMigrationSummary(cmd, "console migration", summary)
			}
			return err
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Report replacements without modifying files")
	return cmd
}

func printMigrationSummary(cmd *cobra.Command, label string, summary *app.MigrationSummary) {
	out := cmd.OutOrStdout()
	verb := "changed"
	if summary.DryRun {
		verb = "would change"
	}
	_, _ = fmt.Fprintf(out, "%s: %d replacement(s), %s %d of %d file(s)\n",
		label, summary.Replacements, verb, summary.FilesChanged, summary.FilesScanned)
	if summary.ReportPath != "" {
		_, _ = fmt.Fprintf(out, "report written to %s\n", summary.ReportPath)
	}
}
