// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tsbuild/internal/adapters/config"
	_ "go.trai.ch/tsbuild/internal/adapters/locator"
	_ "go.trai.ch/tsbuild/internal/adapters/logger"
	_ "go.trai.ch/tsbuild/internal/adapters/report"
	_ "go.trai.ch/tsbuild/internal/adapters/shell"
	_ "go.trai.ch/tsbuild/internal/adapters/stager"
	// Register app and engine nodes.
	_ "go.trai.ch/tsbuild/internal/app"
	_ "go.trai.ch/tsbuild/internal/engine/planner"
	_ "go.trai.ch/tsbuild/internal/engine/scheduler"
)
