package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsbuild/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tsbuild/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tsbuild/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, log), nil
		},
	})
}
