package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/osei/papertrade/internal/infrastructure/auth"
)

var (
	errMissingIdentity     = errors.New("missing caller identity")
	errMissingAuthHeader   = errors.New("missing authorization header")
	errMalformedAuthHeader = errors.New("invalid authorization header format")
	errInvalidToken        = errors.New("invalid or expired token")
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserIDContextKey is the context key for the authenticated user ID
	UserIDContextKey ContextKey = "user_id"

	// UserIDHeader carries the caller identity when JWT verification
	// is disabled. Intended for trusted gateways and local development.
	UserIDHeader = "X-User-ID"
)

// AuthMiddleware authenticates requests. When jwtManager is non-nil a
// Bearer token is required; otherwise the identity is taken from the
// X-User-ID header set by an upstream that already authenticated the
// caller.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolveUserID(r, jwtManager)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveUserID(r *http.Request, jwtManager *auth.JWTManager) (string, error) {
	if jwtManager == nil {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			return "", errMissingIdentity
		}
		return userID, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errMalformedAuthHeader
	}

	claims, err := jwtManager.Verify(parts[1])
	if err != nil {
		return "", errInvalidToken
	}

	return claims.UserID, nil
}

// GetUserIDFromContext extracts the authenticated user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}
