package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.alchm.dev/scullery/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher()
		},
	})
}

// DefaultDebounceWindow coalesces editor save bursts into one re-analysis.
const DefaultDebounceWindow = 300 * time.Millisecond
