// Package server arma el handler HTTP completo a partir de la
// configuración: keysource, issuer, services, controllers y router.
package server

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/firmajuan/internal/config"
	discoveryctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/discovery"
	healthctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/health"
	rootctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/root"
	tokenctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/token"
	"github.com/dropDatabas3/firmajuan/internal/http/router"
	discoverysvc "github.com/dropDatabas3/firmajuan/internal/http/services/discovery"
	healthsvc "github.com/dropDatabas3/firmajuan/internal/http/services/health"
	tokensvc "github.com/dropDatabas3/firmajuan/internal/http/services/token"
	"github.com/dropDatabas3/firmajuan/internal/keysource"
	"github.com/dropDatabas3/firmajuan/internal/metrics"
	tokenx "github.com/dropDatabas3/firmajuan/internal/token"
)

// ServiceName identifica al servicio en logs y en GET /.
const ServiceName = "firmajuan"

// Build arma el handler completo. El material de firma se resuelve a
// través del SecretSource seleccionado por configuración, decorado con
// cache TTL para no releer disco/entorno en cada request.
func Build(cfg *config.Config) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := metrics.Register(nil); err != nil {
		return nil, err
	}

	source := buildSource(cfg)
	issuer := buildIssuer(cfg, source)

	healthController := healthctrl.NewHealthController(healthsvc.NewHealthService(healthsvc.Deps{
		Source:    source,
		StartedAt: time.Now().UTC(),
	}))
	discoveryController := discoveryctrl.NewDiscoveryController(discoverysvc.NewDiscoveryService(source))
	tokenController := tokenctrl.NewTokenController(tokensvc.NewTokenService(issuer))

	return router.New(router.Deps{
		Root:               rootctrl.NewRootController(ServiceName),
		Health:             healthController,
		Discovery:          discoveryController,
		Token:              tokenController,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}), nil
}

func buildSource(cfg *config.Config) keysource.SecretSource {
	var inner keysource.SecretSource
	switch cfg.Keys.Source {
	case "env":
		inner = keysource.NewEnvSource(cfg.Keys.PrivateKeyEnv, cfg.Keys.JWKSEnv)
	default:
		inner = keysource.NewFileSource(cfg.Keys.PrivateKeyPath, cfg.Keys.JWKSPath)
	}
	return keysource.NewCachedSource(inner, cfg.KeysCacheTTL())
}

func buildIssuer(cfg *config.Config, source keysource.SecretSource) *tokenx.Issuer {
	issuer := tokenx.NewIssuer(source, tokenx.IdentityPolicy{
		AllowDefaults: cfg.Token.AllowDefaultIdentity,
		UserID:        cfg.Token.DefaultUserID,
		BotID:         cfg.Token.DefaultBotID,
	})
	if cfg.Token.Issuer != "" {
		issuer.Iss = cfg.Token.Issuer
	}
	if cfg.Token.Audience != "" {
		issuer.Aud = cfg.Token.Audience
	}
	issuer.TTL = cfg.TokenTTL()
	return issuer
}
