// Package shell provides a subprocess executor for compiler and linter runs.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"go.alchm.dev/scullery/internal/core/domain"
	"go.alchm.dev/scullery/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec with pipes.
//
// Output is captured rather than streamed through a PTY: the parsers
// downstream need clean, ANSI-free compiler output.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

var _ ports.Executor = (*Executor)(nil)

// Execute runs the command and waits for completion.
//
// A non-zero exit is not an error: tsc and ESLint exit 1 whenever issues
// exist, and their output is the whole point of running them. Only spawn
// failures and context cancellation produce errors.
func (e *Executor) Execute(ctx context.Context, command []string, opts ports.ExecOptions) (*ports.ExecResult, error) {
	if len(command) == 0 {
		return nil, zerr.With(domain.ErrCommandSpawnFailed, "reason", "empty command")
	}

	//nolint:gosec // commands come from the project configuration
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)

	if opts.WorkingDir != "" {
		cmd.Dir = opts.WorkingDir
	}

	cmd.Env = os.Environ()
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Env, opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeWriter(&stdout, opts.Stdout)
	cmd.Stderr = teeWriter(&stderr, opts.Stderr)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandSpawnFailed.Error()), "command", command[0])
	}

	err := cmd.Wait()
	result := &ports.ExecResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			// Context cancellation surfaces as a killed process; report it
			// as an error so callers do not mistake it for tool output.
			if ctx.Err() != nil {
				return nil, zerr.Wrap(ctx.Err(), "command canceled")
			}
			return result, nil
		}
		return nil, zerr.Wrap(err, "command failed")
	}

	return result, nil
}

// teeWriter combines the capture buffer with an optional live stream.
func teeWriter(capture *bytes.Buffer, live io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(capture, live)
}
