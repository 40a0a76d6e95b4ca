package jwks

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
)

// PublicKey reconstruye la clave pública RSA desde los componentes n/e.
// Es la operación inversa a BuildKey; los verificadores la usan para
// validar firmas contra el documento publicado.
func (k *Key) PublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("jwks: decode n: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("jwks: decode e: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// PublicKeyByKID busca la entrada con el kid dado y reconstruye su clave.
func (d *Document) PublicKeyByKID(kid string) (*rsa.PublicKey, error) {
	for i := range d.Keys {
		if d.Keys[i].KID == kid {
			return d.Keys[i].PublicKey()
		}
	}
	return nil, fmt.Errorf("jwks: kid %q not found in document", kid)
}
