// Package token emite los bearer tokens RS256 del backend de comercio.
// El kid del header de cada token emitido es siempre el kid de la primera
// entrada del documento JWKS publicado: es lo que le permite al verificador
// encontrar la clave pública correcta.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/firmajuan/internal/keysource"
	"github.com/dropDatabas3/firmajuan/internal/observability/logger"
)

// Registered claims fijados por política, no por el caller.
const (
	DefaultIssuer   = "firmajuan"
	DefaultAudience = "merchant-api"
	DefaultTTL      = 7 * 24 * time.Hour // "7d"
)

var (
	// ErrKeyUnavailable indica que no se pudo cargar la clave privada
	// o el documento JWKS.
	ErrKeyUnavailable = errors.New("token: signing key material unavailable")

	// ErrSigning indica una falla criptográfica al firmar.
	ErrSigning = errors.New("token: signing failed")
)

// IssueRequest es la entrada de Issue. Los punteros distinguen campo
// ausente (nil) de string vacío explícito; la política trata distinto
// cada caso.
type IssueRequest struct {
	UserID *string
	BotID  *string
}

// Header es el header JOSE del token emitido, eco para el caller.
type Header struct {
	Alg string `json:"alg"`
	KID string `json:"kid"`
}

// IssuedToken es el resultado de una emisión.
type IssuedToken struct {
	Token     string         // JWT compacto firmado
	ExpiresIn string         // etiqueta legible del TTL, ej "7d"
	TokenType string         // siempre "Bearer"
	Claims    map[string]any // claims firmadas, eco para el caller
	Header    Header
}

// Issuer firma tokens con la clave del SecretSource y el claim set fijo.
type Issuer struct {
	Iss    string
	Aud    string
	TTL    time.Duration
	Source keysource.SecretSource
	Policy IdentityPolicy
}

// NewIssuer crea un Issuer con los registered claims por defecto.
func NewIssuer(source keysource.SecretSource, policy IdentityPolicy) *Issuer {
	return &Issuer{
		Iss:    DefaultIssuer,
		Aud:    DefaultAudience,
		TTL:    DefaultTTL,
		Source: source,
		Policy: policy,
	}
}

// Issue resuelve la identidad, carga el material de firma y devuelve el
// token compacto con su metadata.
//
// Errores: ErrValidation (identidad vacía), ErrKeyUnavailable (material
// no aprovisionado), ErrSigning (falla criptográfica).
func (i *Issuer) Issue(ctx context.Context, req IssueRequest) (*IssuedToken, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("token"), logger.Op("Issue"))

	userID, botID, err := i.Policy.Resolve(req.UserID, req.BotID)
	if err != nil {
		return nil, err
	}

	priv, err := i.Source.PrivateKey(ctx)
	if err != nil {
		log.Error("private key unavailable", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	doc, _, err := i.Source.Document(ctx)
	if err != nil {
		log.Error("jwks document unavailable", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	kid, ok := doc.ActiveKID()
	if !ok {
		return nil, fmt.Errorf("%w: jwks document has no keys", ErrKeyUnavailable)
	}

	now := time.Now().UTC()
	exp := now.Add(i.TTL)

	claims := jwtv5.MapClaims{
		"user_id": userID,
		"bot_id":  botID,
		"iss":     i.Iss,
		"aud":     i.Aud,
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
		"jti":     uuid.NewString(),
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	tk.Header["kid"] = kid
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(priv)
	if err != nil {
		log.Error("signing failed", logger.Err(err), logger.KID(kid))
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	log.Info("token issued",
		logger.KID(kid),
		logger.UserID(userID),
		logger.BotID(botID),
	)

	return &IssuedToken{
		Token:     signed,
		ExpiresIn: TTLLabel(i.TTL),
		TokenType: "Bearer",
		Claims:    map[string]any(claims),
		Header:    Header{Alg: "RS256", KID: kid},
	}, nil
}

// Keyfunc devuelve un jwt.Keyfunc que resuelve la clave pública por el
// 'kid' del header contra el documento publicado. Lo usan los tests y
// cualquier verificación local.
func (i *Issuer) Keyfunc() jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		doc, _, err := i.Source.Document(context.Background())
		if err != nil {
			return nil, err
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token: kid missing in header")
		}
		return doc.PublicKeyByKID(kid)
	}
}

// TTLLabel formatea un TTL como etiqueta compacta: días enteros como "7d",
// el resto en notación de time.Duration.
func TTLLabel(ttl time.Duration) string {
	if ttl > 0 && ttl%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", int(ttl/(24*time.Hour)))
	}
	return ttl.String()
}
