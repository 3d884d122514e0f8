package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	detailNotAuthenticated   = "Not authenticated"
	detailInvalidToken       = "Invalid token"
	detailInvalidCredentials = "Invalid credentials"
	detailBadLogin           = "Incorrect username or password"
	detailInternal           = "Internal server error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeUnauthorized sends a 401 with the bearer challenge header.
func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}
