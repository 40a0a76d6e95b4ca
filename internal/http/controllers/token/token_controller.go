// Package token contiene el controller de emisión de tokens.
package token

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/firmajuan/internal/http/dto/token"
	httperrors "github.com/dropDatabas3/firmajuan/internal/http/errors"
	"github.com/dropDatabas3/firmajuan/internal/http/helpers"
	svc "github.com/dropDatabas3/firmajuan/internal/http/services/token"
	"github.com/dropDatabas3/firmajuan/internal/observability/logger"
	tokenx "github.com/dropDatabas3/firmajuan/internal/token"
)

// TokenController maneja POST /generate-token.
type TokenController struct {
	service svc.TokenService
}

// NewTokenController crea un nuevo controller de tokens.
func NewTokenController(service svc.TokenService) *TokenController {
	return &TokenController{service: service}
}

// Generate maneja POST /generate-token.
// Body vacío es válido: aplica la política de identidades por defecto.
func (c *TokenController) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TokenController.Generate"))

	var req dto.GenerateRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Generate(ctx, req)
	if err != nil {
		log.Error("token generation failed", logger.Err(err))
		httperrors.WriteError(w, mapTokenError(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// mapTokenError traduce errores de dominio al envelope HTTP.
// Fallas de material de firma y de criptografía se degradan a un interno
// genérico: el cliente no ve detalle más allá del mensaje.
func mapTokenError(err error) *httperrors.AppError {
	if errors.Is(err, tokenx.ErrValidation) {
		return httperrors.ErrValidation
	}
	return httperrors.ErrInternalServerError.WithCause(err)
}
