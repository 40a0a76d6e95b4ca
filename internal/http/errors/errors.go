// Package errors define el envelope uniforme de errores HTTP del servicio.
// Toda ruta que falla responde JSON {error, message[, details]} con el
// status correspondiente; nada tumba el proceso.
package errors

import (
	"fmt"
	"net/http"
)

// AppError es el error estándar de la aplicación.
type AppError struct {
	Code       string `json:"error"`             // etiqueta corta, ej "Route not found"
	Message    string `json:"message"`           // mensaje para el cliente
	Detail     string `json:"details,omitempty"` // detalle opcional (validaciones)
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMessage devuelve una COPIA del error con otro mensaje.
// Copiar evita mutar las variables globales base.
func (e *AppError) WithMessage(message string) *AppError {
	newErr := *e
	newErr.Message = message
	return &newErr
}

// WithDetail devuelve una copia del error con detalle adicional.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause devuelve una copia del error con la causa original adjunta.
// La causa no se serializa al cliente.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// FromError convierte un error genérico en AppError.
// Si no lo es, devuelve un error interno genérico conservando la causa:
// el cliente nunca ve detalles de fallas internas.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	// 400
	ErrValidation = &AppError{
		Code:       "Validation error",
		Message:    "user_id and bot_id are required",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "Validation error",
		Message:    "request body is not valid JSON",
		HTTPStatus: http.StatusBadRequest,
	}

	// 404
	ErrRouteNotFound = &AppError{
		Code:       "Route not found",
		Message:    "the requested route does not exist",
		HTTPStatus: http.StatusNotFound,
	}

	// 405
	ErrMethodNotAllowed = &AppError{
		Code:       "Method not allowed",
		Message:    "the HTTP method is not allowed for this resource",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	// 500
	ErrInternalServerError = &AppError{
		Code:       "Internal server error",
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
	}
)
