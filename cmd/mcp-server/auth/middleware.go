package auth

import (
	"context"
	"fmt"
	"net/http"
)

// AuthMiddleware creates HTTP middleware for authentication
type AuthMiddleware struct {
	tokenAuth *TokenAuth
	optional  bool
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenAuth *TokenAuth, optional bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokenAuth: tokenAuth,
		optional:  optional,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Allow OPTIONS requests (CORS preflight) to pass through without auth
		if r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		// Try to extract token from header first
		token := ExtractTokenFromHeader(r)

		// If not in header, try query parameter (for SSE)
		if token == "" {
			token = ExtractTokenFromQuery(r)
		}

		if token == "" {
			if !m.optional {
				http.Error(w, "Unauthorized: missing authentication token", http.StatusUnauthorized)
				return
			}
			// Optional auth - continue without user context
			next.ServeHTTP(w, r)
			return
		}

		userCtx, err := m.tokenAuth.VerifyToken(token)
		if err != nil {
			if !m.optional {
				http.Error(w, fmt.Sprintf("Unauthorized: %v", err), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Inject caller context into the request
		ctx := context.WithValue(r.Context(), UserContextKey, userCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandlerFunc wraps an HTTP handler function with authentication
func (m *AuthMiddleware) HandlerFunc(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.Handler(next).ServeHTTP(w, r)
	}
}

// RequireAuth creates middleware that requires authentication
func RequireAuth(tokenAuth *TokenAuth) *AuthMiddleware {
	return NewAuthMiddleware(tokenAuth, false)
}

// OptionalAuth creates middleware that allows optional authentication
func OptionalAuth(tokenAuth *TokenAuth) *AuthMiddleware {
	return NewAuthMiddleware(tokenAuth, true)
}
