// Package health contiene el service del liveness check.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/firmajuan/internal/http/dto/health"
	"github.com/dropDatabas3/firmajuan/internal/keysource"
	"github.com/dropDatabas3/firmajuan/internal/observability/logger"
)

// HealthService define la operación de liveness.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables del health service.
type Deps struct {
	Source    keysource.SecretSource
	StartedAt time.Time
}

type healthService struct {
	deps Deps
}

// NewHealthService crea el service de health check.
func NewHealthService(deps Deps) HealthService {
	return &healthService{deps: deps}
}

// Check reporta si el material de firma es resoluble.
// Solo chequea presencia (que la clave y el documento carguen), sin
// validación criptográfica. Nunca devuelve error: la ausencia de
// dependencias se reporta como status ERROR, no como falla del endpoint.
func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("health"),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.ComponentStatus),
		Timestamp:  time.Now().UTC(),
		Uptime:     time.Since(s.deps.StartedAt).Round(time.Second).String(),
	}

	ok := true

	// 1) Clave privada
	if _, err := s.deps.Source.PrivateKey(ctx); err != nil {
		response.Components["private_key"] = dto.ComponentStatus{
			Status:  "error",
			Message: "unavailable",
		}
		ok = false
		log.Error("private key unavailable", logger.Err(err))
	} else {
		response.Components["private_key"] = dto.ComponentStatus{Status: "ok"}
	}

	// 2) Documento JWKS
	if _, _, err := s.deps.Source.Document(ctx); err != nil {
		response.Components["jwks_document"] = dto.ComponentStatus{
			Status:  "error",
			Message: "unavailable",
		}
		ok = false
		log.Error("jwks document unavailable", logger.Err(err))
	} else {
		response.Components["jwks_document"] = dto.ComponentStatus{Status: "ok"}
	}

	if ok {
		response.Status = "OK"
	} else {
		response.Status = "ERROR"
	}

	return response
}
