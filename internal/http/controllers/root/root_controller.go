// Package root contiene el controller informativo de GET /.
package root

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/firmajuan/internal/http/helpers"
)

// infoResponse describe el servicio y sus endpoints.
type infoResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// RootController maneja GET /.
type RootController struct {
	serviceName string
}

// NewRootController crea el controller informativo.
func NewRootController(serviceName string) *RootController {
	return &RootController{serviceName: serviceName}
}

// Info maneja GET /. Solo informativo, sin dependencias.
func (c *RootController) Info(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, infoResponse{
		Message:   c.serviceName + " token service",
		Status:    "running",
		Timestamp: time.Now().UTC(),
		Endpoints: map[string]string{
			"health":         "GET /health",
			"jwks":           "GET /.well-known/jwks.json",
			"generate_token": "POST /generate-token",
			"metrics":        "GET /metrics",
		},
	})
}
