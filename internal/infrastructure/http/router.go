package http

import (
	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/http/handlers"
)

// RegisterHealth mounts the probes. They sit outside the auth guard.
func RegisterHealth(e *echo.Echo, checks ...handlers.Check) {
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(checks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
}
