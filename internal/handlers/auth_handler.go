package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prudhvinik1/odoosync/internal/services"
)

// TokenResponse is the OAuth2 password-flow reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthHandler struct {
	auth   *services.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Token handles POST /token with form fields username and password.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}

	if !r.PostForm.Has("username") || !r.PostForm.Has("password") {
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	resp, err := h.auth.Login(r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeUnauthorized(w, detailBadLogin)
		return
	}
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, detailInternal)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: resp.Token,
		TokenType:   "bearer",
	})
}
