package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scullery version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)
			return nil
		},
	}
}
