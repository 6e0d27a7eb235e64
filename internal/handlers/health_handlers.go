package handlers

import (
	"context"
	"net/http"
	"time"

	"velodrive/internal/caching"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *database.DB and *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db       Pinger
	cacheSvc caching.CacheService
	version  string
}

// NewHealthHandlers creates a new health handlers instance. cacheSvc may be nil.
func NewHealthHandlers(db Pinger, cacheSvc caching.CacheService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		version:  version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck reports database and cache reachability. The database is
// required; a missing cache only degrades the service.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
	}
	statusCode := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		c.Logger().Errorf("health: database ping failed: %v", err)
		health.Services["database"] = "unhealthy"
		health.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else {
		health.Services["database"] = "healthy"
	}

	switch {
	case h.cacheSvc == nil:
		health.Services["redis"] = "disabled"
	case h.cacheSvc.Ping(ctx) != nil:
		health.Services["redis"] = "unhealthy"
		if statusCode == http.StatusOK {
			health.Status = "degraded"
		}
	default:
		health.Services["redis"] = "healthy"
	}

	return c.JSON(statusCode, health)
}
