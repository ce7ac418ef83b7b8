package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a TUI renderer around the given model.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the planned steps to the model.
func (r *Renderer) OnPlanEmit(steps []string, categories []string) {
	r.program.Send(planMsg{Steps: steps, Categories: categories})
}

// OnStepStart forwards step start events to the model.
func (r *Renderer) OnStepStart(spanID, _ string, name string, startTime time.Time) {
	r.program.Send(stepStartMsg{SpanID: spanID, Name: name, StartTime: startTime})
}

// OnStepLog forwards step output to the model.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.program.Send(stepLogMsg{SpanID: spanID, Data: data})
}

// OnStepComplete forwards step completion events to the model.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(stepCompleteMsg{SpanID: spanID, EndTime: endTime, Err: err})
}

// Program exposes the underlying tea.Program for tests.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
