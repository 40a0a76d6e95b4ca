// Package jwks deriva el documento de descubrimiento de claves (JWKS)
// a partir de un certificado X.509. Es el núcleo del builder offline:
// se ejecuta una vez por aprovisionamiento de claves, no por request.
package jwks

import "encoding/json"

// Key es una entrada JWK (RFC 7517) con metadata X.509.
type Key struct {
	Kty string   `json:"kty"`           // "RSA"
	Use string   `json:"use"`           // "sig"
	Alg string   `json:"alg"`           // "RS256"
	KID string   `json:"kid"`           // thumbprint RFC 7638 de la clave pública
	N   string   `json:"n"`             // módulo RSA, base64url sin padding
	E   string   `json:"e"`             // exponente RSA, base64url sin padding
	X5t string   `json:"x5t,omitempty"` // SHA-1 del DER del certificado, base64url
	X5c []string `json:"x5c,omitempty"` // cadena de certificados, DER en base64 estándar
}

// Document es el JWKS completo: { "keys": [...] }.
// Este servicio publica exactamente una entrada, pero el formato admite varias.
type Document struct {
	Keys []Key `json:"keys"`
}

// ActiveKID devuelve el kid de la primera entrada del documento.
// Es la clave con la que el issuer firma; los tokens emitidos llevan
// este mismo kid en el header para que el verificador la encuentre.
func (d *Document) ActiveKID() (string, bool) {
	if d == nil || len(d.Keys) == 0 {
		return "", false
	}
	return d.Keys[0].KID, true
}

// ParseDocument decodifica un Document desde JSON.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
