package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alchm.dev/scullery/internal/adapters/telemetry"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// recordingRenderer captures step events for assertions. The gomock
// renderer is awkward here because the bridge fires from SDK internals.
type recordingRenderer struct {
	mu         sync.Mutex
	planSteps  []string
	categories []string
	started    []string
	logs       map[string][]byte
	completed  []string
	errs       []error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{logs: make(map[string][]byte)}
}

func (r *recordingRenderer) Start(_ context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                   { return nil }
func (r *recordingRenderer) Wait() error                   { return nil }

func (r *recordingRenderer) OnPlanEmit(steps []string, categories []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planSteps = steps
	r.categories = categories
}

func (r *recordingRenderer) OnStepStart(_, _, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, name)
}

func (r *recordingRenderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[spanID] = append(r.logs[spanID], data...)
}

func (r *recordingRenderer) OnStepComplete(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, spanID)
	r.errs = append(r.errs, err)
}

func (r *recordingRenderer) snapshot() recordingRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return recordingRenderer{
		planSteps:  append([]string(nil), r.planSteps...),
		categories: append([]string(nil), r.categories...),
		started:    append([]string(nil), r.started...),
		completed:  append([]string(nil), r.completed...),
		errs:       append([]error(nil), r.errs...),
	}
}

func setupTracer(t *testing.T, renderer *recordingRenderer) *telemetry.OTelTracer {
	t.Helper()

	bridge := telemetry.NewBridge(renderer)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("scullery-test").WithRenderer(renderer)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	// Route spans through the test provider rather than the global one.
	return tracer.WithTracerProvider(tp)
}

func TestBridge_StepLifecycle(t *testing.T) {
	renderer := newRecordingRenderer()
	tracer := setupTracer(t, renderer)

	ctx, span := tracer.Start(context.Background(), "analysis")
	_, child := tracer.Start(ctx, "batch 1")
	child.End()
	span.End()

	got := renderer.snapshot()
	assert.Equal(t, []string{"analysis", "batch 1"}, got.started)
	require.Len(t, got.completed, 2)
	assert.NoError(t, got.errs[0])
	assert.NoError(t, got.errs[1])
}

func TestBridge_ReportsRecordedError(t *testing.T) {
	renderer := newRecordingRenderer()
	tracer := setupTracer(t, renderer)

	_, span := tracer.Start(context.Background(), "validation")
	span.RecordError(assert.AnError)
	span.End()

	got := renderer.snapshot()
	require.Len(t, got.errs, 1)
	assert.EqualError(t, got.errs[0], assert.AnError.Error())
}

func TestTracer_EmitPlanReachesRenderer(t *testing.T) {
	renderer := newRecordingRenderer()
	tracer := setupTracer(t, renderer)

	tracer.EmitPlan(context.Background(),
		[]string{"analysis", "batch 1", "validation"},
		[]string{"type-safety"})

	got := renderer.snapshot()
	assert.Equal(t, []string{"analysis", "batch 1", "validation"}, got.planSteps)
	assert.Equal(t, []string{"type-safety"}, got.categories)
}

func TestSpan_WriteStreamsToRenderer(t *testing.T) {
	renderer := newRecordingRenderer()
	tracer := setupTracer(t, renderer)

	_, span := tracer.Start(context.Background(), "tsc")
	_, err := span.Write([]byte("src/app.ts(3,7): error TS2322\n"))
	require.NoError(t, err)
	span.End()

	// The log channel is asynchronous; wait for the forwarder.
	assert.Eventually(t, func() bool {
		renderer.mu.Lock()
		defer renderer.mu.Unlock()
		for _, data := range renderer.logs {
			if len(data) > 0 {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "anything")
	assert.NotNil(t, ctx)

	n, err := span.Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	span.RecordError(assert.AnError)
	span.SetAttribute("k", "v")
	span.End()

	tracer.EmitPlan(ctx, []string{"a"}, []string{"b"})
}
