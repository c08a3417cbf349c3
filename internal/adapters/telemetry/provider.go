// Package telemetry implements ports.Tracer on OpenTelemetry and forwards
// span lifecycles to a progress renderer.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// OTelTracer is a ports.Tracer backed by an OpenTelemetry tracer.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

var _ ports.Tracer = (*OTelTracer)(nil)

// NewOTelTracer creates a tracer named name from provider.
func NewOTelTracer(provider trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: provider.Tracer(name)}
}

// WithRenderer streams span output and plans to renderer.
func (t *OTelTracer) WithRenderer(renderer ports.Renderer) *OTelTracer {
	t.renderer = renderer
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span, renderer: t.renderer}
}

// EmitPlan records the plan on the current span and hands it to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, taskNames []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tasks", taskNames),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(taskNames)
	}
}

// OTelSpan is a ports.Span backed by an OpenTelemetry span.
type OTelSpan struct {
	span     trace.Span
	renderer ports.Renderer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err and marks the span failed. The status carries the
// outermost message only.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, statusDescription(err))
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
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write streams subprocess output to the renderer, or records it as a span
// event when there is none.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.renderer != nil {
		s.renderer.OnTaskLog(s.span.SpanContext().SpanID().String(), p)
		return len(p), nil
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}

func statusDescription(err error) string {
	msg := err.Error()
	if z, ok := err.(*zerr.Error); ok && z.Message() != "" {
		msg = z.Message()
	}
	first, _, _ := strings.Cut(msg, "\n")
	return first
}
