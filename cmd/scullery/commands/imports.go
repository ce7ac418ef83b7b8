package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newImportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Import statement tooling",
	}
	cmd.AddCommand(c.newImportsMergeCmd())
	return cmd
}

func (c *CLI) newImportsMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [paths...]",
		Short: "Merge duplicate import statements in source files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			summary, err := c.app.MergeImports(cmd.Context(), dryRun, args)
			if summary != nil {
				printMigrationSummary(cmd, "import merge", summary)
			}
			return err
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Report merges without modifying files")
	return cmd
}
