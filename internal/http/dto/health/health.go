// Package health contiene los DTOs del health check.
package health

import "time"

// ComponentStatus es el estado de un componente individual.
type ComponentStatus struct {
	Status  string `json:"status"` // "ok" | "error"
	Message string `json:"message,omitempty"`
}

// HealthResponse es la respuesta de GET /health.
// Status es "OK" solo si todo el material de firma es resoluble.
type HealthResponse struct {
	Status     string                     `json:"status"` // "OK" | "ERROR"
	Uptime     string                     `json:"uptime"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentStatus `json:"components"`
}
