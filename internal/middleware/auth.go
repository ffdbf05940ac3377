package middleware

import (
	"context"
	"net/http"
	"strings"

	"courseapp/internal/logger"
	"courseapp/internal/util"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey  = contextKey("userId")
	AdminContextKey = contextKey("adminId")
)

// Auth returns the bearer-token gate for one principal kind: the secret picks
// the kind, the key picks where the resolved id lands in the request context.
// A missing or malformed header is rejected with 401; a token that fails
// verification (including one signed with the other kind's secret) with 403.
func Auth(jwtSecret string, key contextKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.New()
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Error().Msg("Authorization header missing")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Error().Msg("Invalid authorization header")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]
			claims, err := util.ValidateJWT(tokenString, jwtSecret)
			if err != nil {
				logger.Error().Msgf("Invalid token: %+v", err)
				http.Error(w, "Invalid token", http.StatusForbidden)
				return
			}
			// Embed the resolved principal id into the request context
			ctx := context.WithValue(r.Context(), key, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
