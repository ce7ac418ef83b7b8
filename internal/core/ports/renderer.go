package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation, letting the same event
// stream drive either the interactive TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// Asynchronous renderers (the TUI) may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush any
	// buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the campaign engine has planned its steps.
	// steps: all step names in execution order (analysis, batches, validation)
	// categories: the targeted issue categories
	OnPlanEmit(steps []string, categories []string)

	// OnStepStart is called when a step begins execution.
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepLog is called when a step emits output. data may contain
	// partial lines.
	OnStepLog(spanID string, data []byte)

	// OnStepComplete is called when a step finishes. err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
