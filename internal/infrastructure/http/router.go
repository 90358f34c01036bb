package http

import (
	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the health probes on e. They sit outside every
// session guard.
func RegisterProbes(e *echo.Echo, deps ...handlers.Dependency) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
}
