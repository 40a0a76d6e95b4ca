// Package keysource abstrae la provisión del material de firma: la clave
// privada RSA y el documento JWKS publicado. Hay dos estrategias
// intercambiables (variable de entorno inline o par de archivos en disco),
// seleccionadas por configuración al arrancar. El issuer, el endpoint de
// discovery y el health check son agnósticos a la estrategia.
package keysource

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
)

// ErrUnavailable indica que la clave privada o el documento JWKS
// no están aprovisionados o no se pueden leer.
var ErrUnavailable = errors.New("keysource: key material unavailable")

// SecretSource resuelve el material de firma.
// Las implementaciones son seguras para lectura concurrente: el material
// es read-only, nunca se muta después de aprovisionado.
type SecretSource interface {
	// PrivateKey devuelve la clave privada RSA de firma.
	PrivateKey(ctx context.Context) (*rsa.PrivateKey, error)

	// Document devuelve el JWKS parseado y sus bytes crudos.
	// Los bytes crudos se sirven verbatim en el endpoint de discovery.
	Document(ctx context.Context) (*jwks.Document, []byte, error)
}

// ParsePrivateKey decodifica una clave privada RSA en PEM.
// Acepta PKCS#1 ("RSA PRIVATE KEY") y PKCS#8 ("PRIVATE KEY").
func ParsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in private key", ErrUnavailable)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse pkcs1: %v", ErrUnavailable, err)
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse pkcs8: %v", ErrUnavailable, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: private key is not RSA", ErrUnavailable)
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrUnavailable, block.Type)
	}
}

func parseDocument(raw []byte) (*jwks.Document, []byte, error) {
	doc, err := jwks.ParseDocument(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: parse jwks document: %v", ErrUnavailable, err)
	}
	if len(doc.Keys) == 0 {
		return nil, nil, fmt.Errorf("%w: jwks document has no keys", ErrUnavailable)
	}
	return doc, raw, nil
}
