package server

import (
	"log/slog"
	"net/http"

	serverHandlers "sectorgen/internal/server/handlers"
	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/database"
	"sectorgen/internal/universe"
	universeHandlers "sectorgen/internal/universe/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Routes struct {
	db              *database.DB
	universeService *universe.Service
	metrics         config.MetricsConfig
	logger          *slog.Logger
}

func NewRoutes(db *database.DB, universeService *universe.Service, metrics config.MetricsConfig, logger *slog.Logger) *Routes {
	return &Routes{
		db:              db,
		universeService: universeService,
		metrics:         metrics,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	universeHandler := universeHandlers.NewUniverseHandler(r.universeService, r.logger)

	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/universes", universeHandler.GetUniverses)
	mux.HandleFunc("GET /api/universes/{id}", universeHandler.GetUniverse)
	mux.HandleFunc("GET /api/universes/{id}/route", universeHandler.FindRoute)
	mux.HandleFunc("GET /api/sectors/{id}", universeHandler.GetSector)

	endpoints := []string{
		"/api/server/health",
		"/api/universes",
		"/api/universes/{id}",
		"/api/universes/{id}/route",
		"/api/sectors/{id}",
	}

	if r.metrics.Enabled {
		mux.Handle("GET "+r.metrics.Path, promhttp.Handler())
		endpoints = append(endpoints, r.metrics.Path)
	}

	logger.Info("Routes configured successfully", "public_endpoints", endpoints)

	return mux
}
