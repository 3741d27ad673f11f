// Package main provides the entry point for the lineage traversal
// engine server.
//
// @title Lineage Engine API
// @version 0.1.0
// @description Breadth-first lineage traversal over a search-index-backed edge graph
// @license.name Proprietary
// @host localhost:3002
// @BasePath /
// @schemes http https
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/emergent-company/lineage-engine/domain/health"
	"github.com/emergent-company/lineage-engine/domain/lineage"
	"github.com/emergent-company/lineage-engine/domain/scheduler"
	"github.com/emergent-company/lineage-engine/domain/tracing"
	"github.com/emergent-company/lineage-engine/internal/config"
	"github.com/emergent-company/lineage-engine/internal/database"
	"github.com/emergent-company/lineage-engine/internal/metrics"
	"github.com/emergent-company/lineage-engine/internal/registry"
	"github.com/emergent-company/lineage-engine/internal/searchindex"
	"github.com/emergent-company/lineage-engine/internal/server"
	"github.com/emergent-company/lineage-engine/pkg/logger"
)

func main() {
	// Load .env files if present (for local development).
	// Order matters: .env.local overrides .env; Overload ensures local
	// values take precedence.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Overload("../../.env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		server.Module,
		metrics.Module,
		tracing.Module,

		// Edge registry and search backend
		registry.Module,
		searchindex.Module,

		// Domain modules
		health.Module,
		lineage.Module,
		scheduler.Module,
	).Run()
}
