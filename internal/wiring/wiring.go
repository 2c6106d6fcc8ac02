// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/plotpy/internal/adapters/cas"
	_ "go.trai.ch/plotpy/internal/adapters/config"
	_ "go.trai.ch/plotpy/internal/adapters/fs"
	_ "go.trai.ch/plotpy/internal/adapters/logger"
	_ "go.trai.ch/plotpy/internal/adapters/python"
	_ "go.trai.ch/plotpy/internal/adapters/telemetry"
	_ "go.trai.ch/plotpy/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/plotpy/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/plotpy/internal/app"
)
