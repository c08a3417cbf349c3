package telemetry

import (
	"context"

	"go.trai.ch/tsbuild/internal/core/ports"
)

// NoOpTracer is a ports.Tracer that records nothing.
type NoOpTracer struct{}

var _ ports.Tracer = NoOpTracer{}

// Start returns ctx and a span that discards everything.
func (NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noOpSpan{}
}

// EmitPlan does nothing.
func (NoOpTracer) EmitPlan(context.Context, []string) {}

type noOpSpan struct{}

func (noOpSpan) End() {}
func (noOpSpan) RecordError(error) {}
func (noOpSpan) SetAttribute(string, any) {}

func (noOpSpan) Write(p []byte) (int, error) {
	return len(p), nil
}
