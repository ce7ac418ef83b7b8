package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.alchm.dev/scullery/internal/adapters/backup"     //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/adapters/checkpoint" //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/adapters/shell"      //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.alchm.dev/scullery/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			checkpoint.NodeID,
			backup.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	progress, err := graft.Dep[ports.ProgressStore](ctx)
	if err != nil {
		return nil, err
	}

	backups, err := graft.Dep[ports.BackupStore](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, progress, backups, fileWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: application, Logger: log}, nil
}
