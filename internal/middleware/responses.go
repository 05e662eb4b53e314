package middleware

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteError answers htmx requests with a JSON error body and everything else
// with plain text.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	writeError(w, r, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		body := errorResponse{Error: msg}
		body.RequestID, _ = RequestID(r.Context())
		_ = json.NewEncoder(w).Encode(body)
		return
	}
	http.Error(w, msg, code)
}
