package httpserver

import (
	"encoding/json"
	"net/http"

	domain "github.com/yogapw/asclepius/internal/domain/predictions"
)

// Every user-visible body is one of these envelopes. Failures never leak
// internal error detail; the message is the client-safe text only.

type predictEnvelope struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Data    *domain.Prediction `json:"data"`
}

type historiesEnvelope struct {
	Status string               `json:"status"`
	Data   []*domain.Prediction `json:"data"`
}

type failEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(body)
}
