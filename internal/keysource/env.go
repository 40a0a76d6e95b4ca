package keysource

import (
	"context"
	"crypto/rsa"
	"fmt"
	"os"
	"strings"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
)

// Nombres de variables por defecto para EnvSource.
const (
	DefaultPrivateKeyEnv = "TOKEN_PRIVATE_KEY"
	DefaultDocumentEnv   = "TOKEN_JWKS_JSON"
)

// EnvSource lee el material inline desde variables de entorno.
// Pensado para despliegues tipo PaaS donde montar archivos es incómodo.
type EnvSource struct {
	PrivateKeyVar string // default: TOKEN_PRIVATE_KEY
	DocumentVar   string // default: TOKEN_JWKS_JSON
}

// NewEnvSource crea un EnvSource con los nombres de variable dados.
// Strings vacíos usan los defaults.
func NewEnvSource(privateKeyVar, documentVar string) *EnvSource {
	if privateKeyVar == "" {
		privateKeyVar = DefaultPrivateKeyEnv
	}
	if documentVar == "" {
		documentVar = DefaultDocumentEnv
	}
	return &EnvSource{PrivateKeyVar: privateKeyVar, DocumentVar: documentVar}
}

// PrivateKey implementa SecretSource.
// Los PEM inline suelen venir con "\n" escapado (una sola línea en el
// entorno); se normalizan a saltos de línea reales antes de decodificar.
func (s *EnvSource) PrivateKey(_ context.Context) (*rsa.PrivateKey, error) {
	raw := os.Getenv(s.PrivateKeyVar)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: env %s is empty", ErrUnavailable, s.PrivateKeyVar)
	}
	raw = strings.ReplaceAll(raw, `\n`, "\n")
	return ParsePrivateKey([]byte(raw))
}

// Document implementa SecretSource.
func (s *EnvSource) Document(_ context.Context) (*jwks.Document, []byte, error) {
	raw := os.Getenv(s.DocumentVar)
	if strings.TrimSpace(raw) == "" {
		return nil, nil, fmt.Errorf("%w: env %s is empty", ErrUnavailable, s.DocumentVar)
	}
	return parseDocument([]byte(raw))
}
