// Package config carga la configuración del servicio: YAML opcional con
// overrides por variables de entorno. Se construye UNA vez en main y se
// pasa explícito al wiring; ningún componente hace lookups globales
// perezosos de configuración.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Token struct {
		Issuer   string `yaml:"issuer"`
		Audience string `yaml:"audience"`
		TTL      string `yaml:"ttl"` // duración Go, ej "168h"

		// AllowDefaultIdentity habilita la sustitución de user_id/bot_id
		// ausentes por los fallbacks fijos. Compatibilidad con el
		// comportamiento original; apagar en despliegues que exigen
		// identidad explícita.
		AllowDefaultIdentity bool   `yaml:"allow_default_identity"`
		DefaultUserID        string `yaml:"default_user_id"`
		DefaultBotID         string `yaml:"default_bot_id"`
	} `yaml:"token"`

	Keys struct {
		// Source selecciona la estrategia de aprovisionamiento:
		// "file" (par de archivos en disco) o "env" (material inline).
		Source string `yaml:"source"`

		PrivateKeyPath string `yaml:"private_key_path"`
		JWKSPath       string `yaml:"jwks_path"`

		PrivateKeyEnv string `yaml:"private_key_env"`
		JWKSEnv       string `yaml:"jwks_env"`

		CacheTTL string `yaml:"cache_ttl"` // 0 o vacío usa el default
	} `yaml:"keys"`
}

// Default devuelve una configuración con los defaults sanos aplicados.
func Default() *Config {
	var c Config
	c.Token.AllowDefaultIdentity = true
	c.applyDefaults()
	return &c
}

// Load lee el YAML de path, aplica defaults y overrides de entorno.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	// Default true: la ausencia de la clave en YAML no debe apagar la
	// política de compatibilidad.
	c.Token.AllowDefaultIdentity = true
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.applyEnvOverrides()
	return &c, nil
}

// FromEnv construye la configuración solo desde el entorno (sin YAML).
func FromEnv() *Config {
	c := Default()
	c.applyEnvOverrides()
	return c
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Token.TTL == "" {
		c.Token.TTL = "168h" // 7d
	}
	if c.Keys.Source == "" {
		c.Keys.Source = "file"
	}
	if c.Keys.CacheTTL == "" {
		c.Keys.CacheTTL = "1m"
	}
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := getEnvStr("TOKEN_ISSUER"); ok {
		c.Token.Issuer = v
	}
	if v, ok := getEnvStr("TOKEN_AUDIENCE"); ok {
		c.Token.Audience = v
	}
	if v, ok := getEnvStr("TOKEN_TTL"); ok {
		c.Token.TTL = v
	}
	if v, ok := getEnvBool("TOKEN_ALLOW_DEFAULT_IDENTITY"); ok {
		c.Token.AllowDefaultIdentity = v
	}
	if v, ok := getEnvStr("TOKEN_DEFAULT_USER_ID"); ok {
		c.Token.DefaultUserID = v
	}
	if v, ok := getEnvStr("TOKEN_DEFAULT_BOT_ID"); ok {
		c.Token.DefaultBotID = v
	}

	if v, ok := getEnvStr("KEYS_SOURCE"); ok {
		c.Keys.Source = strings.ToLower(v)
	}
	if v, ok := getEnvStr("KEYS_PRIVATE_KEY_PATH"); ok {
		c.Keys.PrivateKeyPath = v
	}
	if v, ok := getEnvStr("KEYS_JWKS_PATH"); ok {
		c.Keys.JWKSPath = v
	}
	if v, ok := getEnvStr("KEYS_CACHE_TTL"); ok {
		c.Keys.CacheTTL = v
	}
}

// TokenTTL parsea el TTL del token; valores inválidos usan 168h.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.Token.TTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// KeysCacheTTL parsea el TTL del cache de material; inválidos usan 0
// (el keysource aplica su propio default).
func (c *Config) KeysCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Keys.CacheTTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate chequea los valores enumerados.
func (c *Config) Validate() error {
	switch c.Keys.Source {
	case "file", "env":
	default:
		return fmt.Errorf("config: keys.source must be file or env, got %q", c.Keys.Source)
	}
	return nil
}

// ───────── helpers de entorno ─────────

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvBool(key string) (bool, bool) {
	v, ok := getEnvStr(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func getEnvCSV(key string) ([]string, bool) {
	v, ok := getEnvStr(key)
	if !ok {
		return nil, false
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, len(out) > 0
}
