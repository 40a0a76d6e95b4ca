package keysource

import (
	"context"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
)

// Rutas relativas por defecto para FileSource.
const (
	DefaultPrivateKeyPath = "keys/private.pem"
	DefaultDocumentPath   = "keys/jwks.json"
)

// FileSource lee el material desde un par de archivos en disco:
// la clave privada PEM y el jwks.json producido por el builder.
type FileSource struct {
	PrivateKeyPath string // default: keys/private.pem
	DocumentPath   string // default: keys/jwks.json
}

// NewFileSource crea un FileSource con las rutas dadas.
// Strings vacíos usan los defaults.
func NewFileSource(privateKeyPath, documentPath string) *FileSource {
	if privateKeyPath == "" {
		privateKeyPath = DefaultPrivateKeyPath
	}
	if documentPath == "" {
		documentPath = DefaultDocumentPath
	}
	return &FileSource{PrivateKeyPath: privateKeyPath, DocumentPath: documentPath}
}

// PrivateKey implementa SecretSource.
func (s *FileSource) PrivateKey(_ context.Context) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(s.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.PrivateKeyPath, err)
	}
	return ParsePrivateKey(raw)
}

// Document implementa SecretSource.
func (s *FileSource) Document(_ context.Context) (*jwks.Document, []byte, error) {
	raw, err := os.ReadFile(s.DocumentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.DocumentPath, err)
	}
	return parseDocument(raw)
}
