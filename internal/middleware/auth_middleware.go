package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/puscasale/MAP-SocialNetwork/internal/auth"
	"github.com/puscasale/MAP-SocialNetwork/internal/config"
)

// contextKey is a private type for context values, to avoid key collisions.
type contextKey string

// UserIDKey is the context key holding the authenticated user's ID.
const UserIDKey contextKey = "userID"

// EmailKey is the context key holding the authenticated user's email.
const EmailKey contextKey = "email"

// AuthMiddleware validates the bearer JWT and stores the caller's identity
// in the request context. It is shaped for mux's Router.Use.
func AuthMiddleware(authCfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				http.Error(w, "invalid authorization header, expected Bearer {token}", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ValidateToken(headerParts[1], authCfg.JWTSecretKey)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user's ID, if present.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}

// GetEmailFromContext returns the authenticated user's email, if present.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
