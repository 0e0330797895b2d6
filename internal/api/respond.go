package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperr "rentx/internal/errors"
)

type errorBody struct {
	Error   apperr.Kind `json:"error"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the error taxonomy onto HTTP. The kind travels in the body
// so clients can distinguish "fix your form" from "choose different dates".
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if kind == apperr.KindStorage {
		// Do not leak driver details to clients.
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
