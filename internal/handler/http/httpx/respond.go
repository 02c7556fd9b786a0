// Package httpx holds the JSON response and request-validation helpers shared
// by all HTTP handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorBody{Error: message})
}

// RespondFieldErrors is for validation failures: the field list tells the
// client exactly what to prompt for.
func RespondFieldErrors(w http.ResponseWriter, status int, message string, fields []string) {
	RespondJSON(w, status, errorBody{Error: message, Fields: fields})
}
