// Package linear provides a synchronous, line-buffered renderer for CI
// environments and piped output.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.alchm.dev/scullery/internal/ui/output"
)

// Renderer implements ports.Renderer with chronological, prefixed log
// lines. It is the right choice whenever stdout is not a TTY: campaign
// step output interleaves cleanly and survives log collection.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	steps   map[string]*stepState
	buffers map[string]*bytes.Buffer
}

type stepState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a linear renderer. Nil writers default to the
// process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		steps:   make(map[string]*stepState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op; the linear renderer is synchronous.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining step buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op; there is no background goroutine to join.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned campaign steps.
func (r *Renderer) OnPlanEmit(steps []string, categories []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := "all categories"
	if len(categories) > 0 {
		target = strings.Join(categories, ", ")
	}
	_, _ = fmt.Fprintf(r.stderr, "Planned %d step(s) targeting %s\n", len(steps), target)
}

// OnStepStart prints a step start message and opens its line buffer.
func (r *Renderer) OnStepStart(spanID, _ string, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{name: name, startTime: startTime}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s starting\n", prefix)
}

// OnStepLog buffers output and prints complete lines with the step prefix.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Partial line, keep it for the next chunk.
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				r.buffers[spanID] = rest
			}
			break
		}
		r.printLineLocked(step.name, line)
	}
}

// OnStepComplete flushes the step's buffer and prints its outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", step.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s done in %v\n", prefix, symbol, duration)
	}

	delete(r.steps, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked prints any trailing partial line for a step.
func (r *Renderer) flushBufferLocked(spanID string) {
	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(step.name, buf.Bytes())
		buf.Reset()
	}
}

func (r *Renderer) printLineLocked(stepName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", stepName, string(line))
}
