// Package metrics define los collectors Prometheus del servicio.
// Viven en un paquete propio para evitar ciclos de import entre las capas
// HTTP y de negocio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests HTTP atendidos, por ruta, método y status",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"route", "method"})

	TokensIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokens_issued_total",
		Help: "Tokens firmados emitidos",
	})

	TokenErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "token_errors_total",
		Help: "Emisiones fallidas, por tipo de error",
	}, []string{"reason"})
)

// Register registra los collectors en el registry dado (o el default si es nil).
// Tolera doble registro para no romper en tests que re-wirean el server.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TokensIssuedTotal,
		TokenErrorsTotal,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
