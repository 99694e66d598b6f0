// Package middleware implements the per-route check chain: token presence and
// validity, admin claim, object-id syntax and body schema. Checks short-circuit;
// the first failure writes the response and no later check runs.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rogalski/gamedex/internal/auth"
)

// TokenHeader carries the signed token on requests.
const TokenHeader = "x-auth-token"

type contextKey string

const (
	identityContextKey contextKey = "identity"
	bodyContextKey     contextKey = "body"
)

// GetIdentity retrieves the verified identity from the request context.
// It is only set on routes behind RequireToken.
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(auth.Identity)
	return id, ok
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RequireToken verifies the token header and injects the identity into the
// request context. A missing header is 401; a present but unverifiable token
// is 400.
func RequireToken(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			identity, err := issuer.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose verified identity lacks the admin
// claim. It must run after RequireToken.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok || !identity.IsAdmin {
			writeError(w, http.StatusForbidden, "Access denied.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
