package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plotpy/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/python"             //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/plotpy/internal/core/ports"
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
			fs.NodeID,
			python.NodeID,
			cas.NodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ScriptWriter](ctx)
	if err != nil {
		return nil, err
	}

	interpreters, err := graft.Dep[ports.InterpreterFactory](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.HistoryStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, writer, interpreters, stores, watchers, tracer, recorder, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: recorder,
	}, nil
}
