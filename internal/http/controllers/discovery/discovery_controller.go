// Package discovery contiene el controller del endpoint JWKS público.
package discovery

import (
	"net/http"

	httperrors "github.com/dropDatabas3/firmajuan/internal/http/errors"
	svc "github.com/dropDatabas3/firmajuan/internal/http/services/discovery"
	"github.com/dropDatabas3/firmajuan/internal/observability/logger"
)

// DiscoveryController maneja /.well-known/jwks.json.
type DiscoveryController struct {
	service svc.DiscoveryService
}

// NewDiscoveryController crea un nuevo controller de discovery.
func NewDiscoveryController(service svc.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{service: service}
}

// Get maneja GET/HEAD /.well-known/jwks.json.
// Sirve los bytes del documento tal cual los produjo el builder, así la
// respuesta es byte-idéntica mientras el documento no cambie. El
// Cache-Control público lo agrega el router.
func (c *DiscoveryController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DiscoveryController.Get"))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	data, err := c.service.Document(ctx)
	if err != nil {
		log.Error("failed to load jwks document", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
