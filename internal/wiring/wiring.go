// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.alchm.dev/scullery/internal/adapters/backup"
	_ "go.alchm.dev/scullery/internal/adapters/checkpoint"
	_ "go.alchm.dev/scullery/internal/adapters/config"
	_ "go.alchm.dev/scullery/internal/adapters/logger"
	_ "go.alchm.dev/scullery/internal/adapters/shell"
	_ "go.alchm.dev/scullery/internal/adapters/watcher"
	// Register app nodes.
	_ "go.alchm.dev/scullery/internal/app"
)
