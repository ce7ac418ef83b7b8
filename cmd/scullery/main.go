// Package main is the entry point for the scullery maintenance tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.alchm.dev/scullery/cmd/scullery/commands"
	"go.alchm.dev/scullery/internal/app"
	"go.alchm.dev/scullery/internal/core/domain"
	_ "go.alchm.dev/scullery/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Expected negative outcomes carry their message in command
		// output already; only unexpected failures get logged.
		switch {
		case errors.Is(err, domain.ErrCampaignFailed),
			errors.Is(err, domain.ErrNotReady),
			errors.Is(err, domain.ErrIssuesFound):
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
