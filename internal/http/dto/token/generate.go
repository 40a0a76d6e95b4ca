// Package token contiene los DTOs de emisión de tokens.
package token

// GenerateRequest es el body de POST /generate-token.
// Punteros para distinguir campo ausente (nil) de string vacío explícito:
// la política de defaults solo sustituye campos ausentes.
type GenerateRequest struct {
	UserID *string `json:"user_id"`
	BotID  *string `json:"bot_id"`
}

// Header es el eco del header JOSE del token emitido.
type Header struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

// GenerateResponse es la respuesta de POST /generate-token.
type GenerateResponse struct {
	Success   bool           `json:"success"`
	Token     string         `json:"token"`
	ExpiresIn string         `json:"expires_in"` // ej "7d"
	TokenType string         `json:"token_type"` // "Bearer"
	Payload   map[string]any `json:"payload"`
	Header    Header         `json:"header"`
}
