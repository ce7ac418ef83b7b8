package app

import (
	"go.alchm.dev/scullery/internal/core/ports"
)

// Components bundles the resolved application and its logger for the CLI
// entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}
