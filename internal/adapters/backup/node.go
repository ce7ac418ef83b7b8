package backup

import (
	"context"

	"github.com/grindlemire/graft"
	"go.alchm.dev/scullery/internal/core/ports"
)

// NodeID is the unique identifier for the backup store Graft node.
const NodeID graft.ID = "adapter.backup_store"

func init() {
	graft.Register(graft.Node[ports.BackupStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BackupStore, error) {
			return NewStore(), nil
		},
	})
}
