package jwks

import (
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // x5t es SHA-1 por definición (RFC 7515 §4.1.7)
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"

	"github.com/dropDatabas3/firmajuan/internal/util/atomicwrite"
)

// ParseCertificate decodifica un certificado X.509 en PEM.
func ParseCertificate(pemData []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrCertificateParse)
	}
	if block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("%w: expected CERTIFICATE block, got %s", ErrCertificateParse, block.Type)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertificateParse, err)
	}
	return cert, nil
}

// BuildKey deriva la entrada JWK de un certificado:
//   - n/e: componentes públicos RSA en base64url sin padding
//   - kid: thumbprint RFC 7638 (SHA-256 sobre la forma canónica {"e","kty","n"})
//   - x5t: SHA-1 del DER del certificado, base64url
//   - x5c: [DER en base64 estándar]
//
// La derivación es determinística: el mismo certificado produce siempre
// el mismo kid y el mismo x5t.
func BuildKey(cert *x509.Certificate) (*Key, error) {
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, ErrUnsupportedKey
	}

	n := base64.RawURLEncoding.EncodeToString(pub.N.Bytes())
	e := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes())

	sum := sha1.Sum(cert.Raw) //nolint:gosec // fingerprint x5t, no es uso criptográfico de integridad

	return &Key{
		Kty: "RSA",
		Use: "sig",
		Alg: "RS256",
		KID: Thumbprint(n, e),
		N:   n,
		E:   e,
		X5t: base64.RawURLEncoding.EncodeToString(sum[:]),
		X5c: []string{base64.StdEncoding.EncodeToString(cert.Raw)},
	}, nil
}

// Thumbprint calcula el thumbprint RFC 7638 de una clave RSA.
// La forma canónica ordena los miembros requeridos lexicográficamente
// y no lleva espacios: {"e":"...","kty":"RSA","n":"..."}.
func Thumbprint(n, e string) string {
	canonical := fmt.Sprintf(`{"e":%q,"kty":"RSA","n":%q}`, e, n)
	sum := sha256.Sum256([]byte(canonical))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// BuildDocument parsea un certificado PEM y arma el Document de una entrada.
func BuildDocument(certPEM []byte) (*Document, error) {
	cert, err := ParseCertificate(certPEM)
	if err != nil {
		return nil, err
	}
	key, err := BuildKey(cert)
	if err != nil {
		return nil, err
	}
	return &Document{Keys: []Key{*key}}, nil
}

// BuildFromFile lee el certificado desde certPath y escribe el documento
// pretty-printed en outPath de forma atómica. Si algo falla no se escribe
// salida parcial.
func BuildFromFile(certPath, outPath string) (*Document, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read certificate %s: %v", ErrIO, certPath, err)
	}
	doc, err := BuildDocument(certPEM)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')
	if err := atomicwrite.AtomicWriteFile(outPath, data, 0644); err != nil {
		return nil, fmt.Errorf("%w: write document %s: %v", ErrIO, outPath, err)
	}
	return doc, nil
}
