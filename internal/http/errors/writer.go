package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError escribe la respuesta HTTP del error dado.
// Maneja *AppError directamente; cualquier otro error se degrada a un
// interno genérico sin filtrar detalle al cliente.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr)
}
