package gateway

import (
	"encoding/json"
	"net/http"
)

// Error types surfaced in the wire envelope.
const (
	errTypeUnauthorized     = "unauthorized"
	errTypeNotFound         = "not_found"
	errTypeInvalidRequest   = "invalid_request"
	errTypeMethodNotAllowed = "method_not_allowed"
	errTypeInternal         = "internal_server_error"
)

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Message: message, Type: errType}})
}
