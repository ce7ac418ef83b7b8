package checkpoint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.alchm.dev/scullery/internal/core/ports"
)

// NodeID is the unique identifier for the checkpoint store Graft node.
const NodeID graft.ID = "adapter.progress_store"

func init() {
	graft.Register(graft.Node[ports.ProgressStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProgressStore, error) {
			return NewStore(), nil
		},
	})
}
