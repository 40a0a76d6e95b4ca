// Package discovery contiene el service del documento JWKS público.
package discovery

import (
	"context"

	"github.com/dropDatabas3/firmajuan/internal/keysource"
)

// DiscoveryService expone el documento de descubrimiento de claves.
type DiscoveryService interface {
	// Document devuelve los bytes crudos del JWKS tal como los produjo
	// el builder. Se sirven verbatim: sin recomputar ni re-serializar,
	// así respuestas repetidas son byte-idénticas.
	Document(ctx context.Context) ([]byte, error)
}

type discoveryService struct {
	source keysource.SecretSource
}

// NewDiscoveryService crea el service sobre el SecretSource dado.
func NewDiscoveryService(source keysource.SecretSource) DiscoveryService {
	return &discoveryService{source: source}
}

func (s *discoveryService) Document(ctx context.Context) ([]byte, error) {
	_, raw, err := s.source.Document(ctx)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
