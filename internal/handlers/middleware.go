package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/prudhvinik1/odoosync/internal/services"
)

type contextKey string

const subjectKey contextKey = "subject"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*services.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token. The token
// subject is stored in the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, detailNotAuthenticated)
				return
			}

			claims, err := verifier.VerifyToken(token)
			switch {
			case errors.Is(err, services.ErrMissingSubject):
				writeUnauthorized(w, detailInvalidCredentials)
				return
			case err != nil:
				writeUnauthorized(w, detailInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated username, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
