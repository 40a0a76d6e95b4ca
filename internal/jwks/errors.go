package jwks

import "errors"

var (
	// ErrCertificateParse indica que el input no es un certificado X.509 válido.
	ErrCertificateParse = errors.New("jwks: certificate parse failed")

	// ErrUnsupportedKey indica que el certificado no contiene una clave RSA.
	ErrUnsupportedKey = errors.New("jwks: certificate does not contain an RSA public key")

	// ErrIO envuelve fallas de lectura/escritura del builder.
	ErrIO = errors.New("jwks: io failure")
)
