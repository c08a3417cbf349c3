package stager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// NodeID is the unique identifier for the output stager Graft node.
const NodeID graft.ID = "adapter.stager"

func init() {
	graft.Register(graft.Node[ports.Stager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Stager, error) {
			return New(), nil
		},
	})
}
