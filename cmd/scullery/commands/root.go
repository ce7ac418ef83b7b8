// Package commands implements the CLI commands for scullery.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.alchm.dev/scullery/internal/app"
	"go.alchm.dev/scullery/internal/build"
	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/engine/enrich"
)

// CLI represents the command line interface for scullery.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Analyze(ctx context.Context, categories []string, outputMode string) ([]domain.Issue, error)
	RunCampaign(ctx context.Context, opts app.CampaignOptions) (*domain.RunSummary, error)
	CampaignStatus(name string) (*domain.Progress, error)
	CampaignReset(name string) error
	Enrich(ctx context.Context, opts app.EnrichOptions) (*enrich.Summary, error)
	MigrateConsole(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error)
	MergeImports(ctx context.Context, dryRun bool, paths []string) (*app.MigrationSummary, error)
	Readiness(ctx context.Context, outputMode string) (*app.ReadinessResult, error)
	Watch(ctx context.Context, categories []string) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "scullery",
		Short:         "Codebase maintenance toolkit for the recipe web app",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
	rootCmd.AddCommand(c.newCampaignCmd())
	rootCmd.AddCommand(c.newEnrichCmd())
	rootCmd.AddCommand(c.newConsoleCmd())
	rootCmd.AddCommand(c.newImportsCmd())
	rootCmd.AddCommand(c.newReadinessCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
