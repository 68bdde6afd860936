package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaadly/vaadly/internal/auth"
)

// TokenVerifier validates an access token. *auth.Service satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// Auth requires a valid Bearer token and puts the authenticated role on
// the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w)
				return
			}

			claims, err := verifier.Verify(tok)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
}
