// Package health contiene el controller del liveness check.
package health

import (
	"net/http"

	"github.com/dropDatabas3/firmajuan/internal/http/helpers"
	svc "github.com/dropDatabas3/firmajuan/internal/http/services/health"
	"github.com/dropDatabas3/firmajuan/internal/observability/logger"
)

// HealthController maneja GET /health.
type HealthController struct {
	service svc.HealthService
}

// NewHealthController crea un nuevo controller de health check.
func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Check maneja GET /health.
// Siempre responde 200: la ausencia de material se reporta en el body
// como status ERROR, no como falla HTTP.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Check"))

	response := c.service.Check(ctx)

	log.Debug("health check completed",
		logger.String("status", response.Status),
	)

	helpers.WriteJSON(w, http.StatusOK, response)
}
