package devserver

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelope{Code: 0, Message: "success", Data: data})
}

// writeError mirrors the portal's error convention: the business code is
// reused as the HTTP status when it is a valid one, otherwise the response
// is a plain 400 carrying the business code in the body.
func writeError(w http.ResponseWriter, code int, message string) {
	status := http.StatusBadRequest
	if code >= 100 && code <= 599 {
		status = code
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Code: code, Message: message})
}
