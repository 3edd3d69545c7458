// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rv/internal/adapters/config"
	_ "go.trai.ch/rv/internal/adapters/fetch"
	_ "go.trai.ch/rv/internal/adapters/installer"
	_ "go.trai.ch/rv/internal/adapters/library"
	_ "go.trai.ch/rv/internal/adapters/lockfile"
	_ "go.trai.ch/rv/internal/adapters/logger"
	_ "go.trai.ch/rv/internal/adapters/repodb"
	_ "go.trai.ch/rv/internal/adapters/telemetry"
	// Register engine nodes.
	_ "go.trai.ch/rv/internal/engine/planner"
	_ "go.trai.ch/rv/internal/engine/resolver"
	_ "go.trai.ch/rv/internal/engine/sync"
	// Register the app composition root.
	_ "go.trai.ch/rv/internal/app"
)
