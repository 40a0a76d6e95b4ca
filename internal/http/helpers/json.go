// Package helpers contiene utilidades compartidas de la capa HTTP.
package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodySize limita el body a 1MB. Los requests de este servicio son
// siempre pequeños.
const maxBodySize = 1 << 20

// DecodeJSON decodifica el body JSON del request en v.
// Un body vacío no es error: deja v sin tocar, para que apliquen los
// defaults de la política. JSON malformado sí es error.
func DecodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // body vacío
		}
		return err
	}
	return nil
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
