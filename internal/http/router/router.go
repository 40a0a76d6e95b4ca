// Package router arma el chi.Router con todas las rutas del servicio.
package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	discoveryctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/discovery"
	healthctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/health"
	rootctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/root"
	tokenctrl "github.com/dropDatabas3/firmajuan/internal/http/controllers/token"
	httperrors "github.com/dropDatabas3/firmajuan/internal/http/errors"
	mw "github.com/dropDatabas3/firmajuan/internal/http/middlewares"
)

// jwksCacheDirective es el Cache-Control del endpoint de discovery.
// El material de claves cambia rara vez; una hora es un compromiso
// razonable entre frescura y carga.
const jwksCacheDirective = "public, max-age=3600"

// Deps contiene los controllers y la configuración del router.
type Deps struct {
	Root      *rootctrl.RootController
	Health    *healthctrl.HealthController
	Discovery *discoveryctrl.DiscoveryController
	Token     *tokenctrl.TokenController

	CORSAllowedOrigins []string
}

// New arma el router completo con su chain de middlewares base.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(deps.CORSAllowedOrigins),
	)

	r.Get("/", deps.Root.Info)
	r.Get("/health", deps.Health.Check)

	r.Group(func(g chi.Router) {
		g.Use(mw.WithCacheControl(jwksCacheDirective))
		g.Get("/.well-known/jwks.json", deps.Discovery.Get)
		g.Head("/.well-known/jwks.json", deps.Discovery.Get)
	})

	r.Group(func(g chi.Router) {
		g.Use(mw.WithNoStore())
		g.Post("/generate-token", deps.Token.Generate)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Catch-all: 404 con método y path en el mensaje
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound.WithMessage(
			fmt.Sprintf("%s %s is not a valid endpoint", req.Method, req.URL.Path),
		))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed.WithDetail(
			fmt.Sprintf("%s %s", req.Method, req.URL.Path),
		))
	})

	return r
}
