package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	if c.App.Env != "dev" {
		t.Fatalf("env: got %s", c.App.Env)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr: got %s", c.Server.Addr)
	}
	if c.Token.TTL != "168h" {
		t.Fatalf("ttl: got %s", c.Token.TTL)
	}
	if !c.Token.AllowDefaultIdentity {
		t.Fatalf("allow_default_identity should default to true")
	}
	if c.Keys.Source != "file" {
		t.Fatalf("keys.source: got %s", c.Keys.Source)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, `
app:
  env: prod
server:
  addr: ":9090"
  cors_allowed_origins:
    - https://merchant.example.com
token:
  issuer: custom-issuer
  ttl: 24h
keys:
  source: env
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.Env != "prod" {
		t.Fatalf("env: got %s", c.App.Env)
	}
	if c.Server.Addr != ":9090" {
		t.Fatalf("addr: got %s", c.Server.Addr)
	}
	if len(c.Server.CORSAllowedOrigins) != 1 || c.Server.CORSAllowedOrigins[0] != "https://merchant.example.com" {
		t.Fatalf("cors: got %v", c.Server.CORSAllowedOrigins)
	}
	if c.Token.Issuer != "custom-issuer" {
		t.Fatalf("issuer: got %s", c.Token.Issuer)
	}
	if c.TokenTTL() != 24*time.Hour {
		t.Fatalf("ttl: got %v", c.TokenTTL())
	}
	if c.Keys.Source != "env" {
		t.Fatalf("keys.source: got %s", c.Keys.Source)
	}
	// Los campos no seteados conservan defaults
	if c.Log.Level != "info" {
		t.Fatalf("log level default: got %s", c.Log.Level)
	}
}

func TestLoad_AbsentFlagKeepsDefaultsOn(t *testing.T) {
	// El YAML no menciona allow_default_identity: debe quedar en true
	path := writeYAML(t, "token:\n  issuer: x\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Token.AllowDefaultIdentity {
		t.Fatalf("absent allow_default_identity should stay true")
	}
}

func TestLoad_ExplicitFalseFlag(t *testing.T) {
	path := writeYAML(t, "token:\n  allow_default_identity: false\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Token.AllowDefaultIdentity {
		t.Fatalf("explicit false should be respected")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("TOKEN_TTL", "48h")
	t.Setenv("TOKEN_ALLOW_DEFAULT_IDENTITY", "false")
	t.Setenv("KEYS_SOURCE", "ENV")
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c := FromEnv()

	if c.Server.Addr != ":7070" {
		t.Fatalf("addr: got %s", c.Server.Addr)
	}
	if c.TokenTTL() != 48*time.Hour {
		t.Fatalf("ttl: got %v", c.TokenTTL())
	}
	if c.Token.AllowDefaultIdentity {
		t.Fatalf("env override should disable default identity")
	}
	// Los valores enumerados se normalizan a minúsculas
	if c.Keys.Source != "env" {
		t.Fatalf("keys.source: got %s", c.Keys.Source)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(c.Server.CORSAllowedOrigins) != len(want) {
		t.Fatalf("cors: got %v", c.Server.CORSAllowedOrigins)
	}
	for i := range want {
		if c.Server.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("cors[%d]: got %s want %s", i, c.Server.CORSAllowedOrigins[i], want[i])
		}
	}
}

func TestTokenTTL_InvalidFallsBack(t *testing.T) {
	c := Default()
	c.Token.TTL = "not-a-duration"
	if c.TokenTTL() != 168*time.Hour {
		t.Fatalf("invalid ttl should fall back to 168h, got %v", c.TokenTTL())
	}

	c.Token.TTL = "-1h"
	if c.TokenTTL() != 168*time.Hour {
		t.Fatalf("negative ttl should fall back to 168h, got %v", c.TokenTTL())
	}
}

func TestKeysCacheTTL(t *testing.T) {
	c := Default()
	if c.KeysCacheTTL() != time.Minute {
		t.Fatalf("default cache ttl: got %v", c.KeysCacheTTL())
	}

	c.Keys.CacheTTL = "garbage"
	if c.KeysCacheTTL() != 0 {
		t.Fatalf("invalid cache ttl should be 0, got %v", c.KeysCacheTTL())
	}
}

func TestValidate_RejectsUnknownSource(t *testing.T) {
	c := Default()
	c.Keys.Source = "vault"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown keys.source")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
