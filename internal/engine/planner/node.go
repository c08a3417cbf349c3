package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsbuild/internal/adapters/locator" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tsbuild/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{locator.NodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			loc, err := graft.Dep[ports.PackageLocator](ctx)
			if err != nil {
				return nil, err
			}
			return New(loc), nil
		},
	})
}
