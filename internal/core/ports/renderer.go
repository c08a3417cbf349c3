package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the tasks of a scheduling round are known.
	OnPlanEmit(tasks []string)

	// OnTaskStart is called when a task begins execution.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskLog is called when a task emits output. data may hold partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
