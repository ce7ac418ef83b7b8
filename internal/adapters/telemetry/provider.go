// Package telemetry traces campaign steps with OpenTelemetry and streams
// span output to the active renderer.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.alchm.dev/scullery/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LogBufferSize is the capacity of the async step-log channel.
const LogBufferSize = 4096

// stepLog carries one chunk of step output to the renderer.
type stepLog struct {
	spanID string
	data   []byte
}

// OTelTracer implements ports.Tracer on the OpenTelemetry SDK. Step output
// written to spans is batched and forwarded to the renderer asynchronously
// so slow terminals never stall a compiler run.
type OTelTracer struct {
	tracer  trace.Tracer
	logChan chan stepLog

	mu       sync.RWMutex
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer under the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:  otel.Tracer(name),
		logChan: make(chan stepLog, LogBufferSize),
	}
	go t.runLoop()
	return t
}

func (t *OTelTracer) runLoop() {
	for msg := range t.logChan {
		t.mu.RLock()
		renderer := t.renderer
		t.mu.RUnlock()

		if renderer != nil {
			renderer.OnStepLog(msg.spanID, msg.data)
		}
	}
}

// WithTracerProvider rebinds the tracer to a specific provider instead of
// the global one.
func (t *OTelTracer) WithTracerProvider(tp trace.TracerProvider) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracer = tp.Tracer("scullery")
	return t
}

// WithRenderer sets the renderer that receives step output.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Shutdown stops the background log forwarder.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	return nil
}

// Start creates a new span for a campaign step.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	var batcher *BatchWriter
	if renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		batcher = NewBatchWriter(0, 0, func(data []byte) {
			select {
			case t.logChan <- stepLog{spanID: spanID, data: data}:
			default:
				// Drop output rather than stall the step.
			}
		})
	}

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// EmitPlan records the planned steps on the current span and hands them to
// the renderer so it can lay out its step list up front.
func (t *OTelTracer) EmitPlan(ctx context.Context, steps []string, categories []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("steps", steps),
			attribute.StringSlice("categories", categories),
		))
	}

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	if renderer != nil {
		renderer.OnPlanEmit(steps, categories)
	}
}

// OTelSpan implements ports.Span on an OpenTelemetry span.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchWriter
}

// End completes the span, flushing any buffered step output first.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error and marks the span failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write streams step output through the batcher, or records it as a span
// event when no renderer is attached.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
