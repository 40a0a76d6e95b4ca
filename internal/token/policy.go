package token

import "errors"

// Identidades de fallback para requests sin user_id/bot_id.
// Heredadas del comportamiento original del backend: hacen a ambos campos
// efectivamente opcionales con una identidad fija. Es una política
// cuestionable para producción, por eso vive detrás de AllowDefaults
// y puede apagarse por despliegue.
const (
	DefaultUserID = "default_user"
	DefaultBotID  = "default_bot"
)

// ErrValidation indica campos de identidad vacíos o faltantes.
var ErrValidation = errors.New("user_id and bot_id are required")

// IdentityPolicy resuelve la identidad final de un request.
type IdentityPolicy struct {
	// AllowDefaults habilita la sustitución de campos AUSENTES por los
	// identificadores de fallback. No aplica a strings vacíos explícitos.
	AllowDefaults bool

	// UserID y BotID son los fallbacks a usar cuando AllowDefaults está
	// activo. Vacíos usan los defaults del paquete.
	UserID string
	BotID  string
}

// Resolve aplica la política sobre los campos del request.
// nil = campo ausente; puntero a string vacío = vacío explícito.
// Un string vacío explícito siempre se rechaza: el cliente pidió una
// identidad vacía y eso nunca es firmable.
func (p IdentityPolicy) Resolve(userID, botID *string) (string, string, error) {
	u := p.resolveField(userID, p.fallbackUser())
	b := p.resolveField(botID, p.fallbackBot())
	if u == "" || b == "" {
		return "", "", ErrValidation
	}
	return u, b, nil
}

func (p IdentityPolicy) resolveField(v *string, fallback string) string {
	if v == nil {
		if p.AllowDefaults {
			return fallback
		}
		return ""
	}
	return *v
}

func (p IdentityPolicy) fallbackUser() string {
	if p.UserID != "" {
		return p.UserID
	}
	return DefaultUserID
}

func (p IdentityPolicy) fallbackBot() string {
	if p.BotID != "" {
		return p.BotID
	}
	return DefaultBotID
}
