package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// NodeID is the unique identifier for the package locator Graft node.
const NodeID graft.ID = "adapter.locator"

func init() {
	graft.Register(graft.Node[ports.PackageLocator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageLocator, error) {
			return New(), nil
		},
	})
}
