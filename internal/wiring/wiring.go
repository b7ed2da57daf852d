// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/donk/internal/adapters/config"
	_ "go.trai.ch/donk/internal/adapters/interpreter"
	_ "go.trai.ch/donk/internal/adapters/lock"
	_ "go.trai.ch/donk/internal/adapters/logger"
	_ "go.trai.ch/donk/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/donk/internal/app"
	_ "go.trai.ch/donk/internal/engine/runner"
)
