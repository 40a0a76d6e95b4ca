// Package token contiene el service de emisión de tokens.
package token

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/firmajuan/internal/http/dto/token"
	"github.com/dropDatabas3/firmajuan/internal/metrics"
	tokenx "github.com/dropDatabas3/firmajuan/internal/token"
)

// TokenService define la operación de emisión.
type TokenService interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type tokenService struct {
	issuer *tokenx.Issuer
}

// NewTokenService crea el service sobre el issuer dado.
func NewTokenService(issuer *tokenx.Issuer) TokenService {
	return &tokenService{issuer: issuer}
}

// Generate emite un token y lo mapea al DTO de respuesta.
// Propaga los errores de dominio del issuer (ErrValidation,
// ErrKeyUnavailable, ErrSigning); el controller decide el status HTTP.
func (s *tokenService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	issued, err := s.issuer.Issue(ctx, tokenx.IssueRequest{
		UserID: req.UserID,
		BotID:  req.BotID,
	})
	if err != nil {
		metrics.TokenErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}

	metrics.TokensIssuedTotal.Inc()

	return &dto.GenerateResponse{
		Success:   true,
		Token:     issued.Token,
		ExpiresIn: issued.ExpiresIn,
		TokenType: issued.TokenType,
		Payload:   issued.Claims,
		Header:    dto.Header{Alg: issued.Header.Alg, Kid: issued.Header.KID},
	}, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, tokenx.ErrValidation):
		return "validation"
	case errors.Is(err, tokenx.ErrKeyUnavailable):
		return "key_unavailable"
	case errors.Is(err, tokenx.ErrSigning):
		return "signing"
	default:
		return "internal"
	}
}
