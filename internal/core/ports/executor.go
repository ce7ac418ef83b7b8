// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
	"time"
)

// ExecResult is the outcome of a finished subprocess.
//
// A non-zero exit code is data, not an error: tsc and ESLint exit non-zero
// whenever issues exist, and their output is still consumed.
type ExecResult struct {
	// Stdout holds the captured standard output.
	Stdout []byte
	// Stderr holds the captured standard error.
	Stderr []byte
	// ExitCode is the process exit code, 0 on success.
	ExitCode int
	// Duration is the wall-clock run time.
	Duration time.Duration
}

// ExecOptions configures a subprocess invocation.
type ExecOptions struct {
	// WorkingDir is the directory the command runs in. Empty means cwd.
	WorkingDir string
	// Env holds extra environment variables in "KEY=VALUE" form, layered
	// over the parent environment.
	Env []string
	// Stdout and Stderr, when set, receive the streams live in addition to
	// the captured copies in ExecResult.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor defines the interface for running external commands
// (the TypeScript compiler, ESLint, build and test commands).
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for it to finish. It returns an
	// error only when the process cannot be spawned or the context is
	// canceled; ordinary non-zero exits are reported via ExecResult.
	Execute(ctx context.Context, command []string, opts ExecOptions) (*ExecResult, error)
}
