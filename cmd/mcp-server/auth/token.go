package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys for storing caller information
type contextKey string

const (
	UserContextKey contextKey = "user"
)

// TokenAuth validates bearer credentials for the HTTP transports. Two forms
// are accepted: a static service token for machine callers, and an HS256 JWT
// signed with the shared secret.
type TokenAuth struct {
	serviceToken string
	jwtSecret    []byte
}

// UserContext represents the authenticated caller
type UserContext struct {
	UserID string
	Email  string
}

// Claims represents the accepted JWT claims
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// NewTokenAuth creates an auth handler from the environment. Returns nil when
// neither MCP_SERVICE_TOKEN nor MCP_JWT_SECRET is set, which means the server
// runs unauthenticated (dev mode).
func NewTokenAuth() *TokenAuth {
	serviceToken := os.Getenv("MCP_SERVICE_TOKEN")
	jwtSecret := os.Getenv("MCP_JWT_SECRET")

	if serviceToken == "" && jwtSecret == "" {
		return nil
	}

	return &TokenAuth{
		serviceToken: serviceToken,
		jwtSecret:    []byte(jwtSecret),
	}
}

// VerifyToken checks a bearer token and returns the caller it identifies
func (a *TokenAuth) VerifyToken(tokenString string) (*UserContext, error) {
	if a == nil {
		return nil, fmt.Errorf("authentication not configured")
	}

	if a.serviceToken != "" && tokenString == a.serviceToken {
		return &UserContext{
			UserID: "service_account",
			Email:  "service@mcp.system",
		}, nil
	}

	if len(a.jwtSecret) == 0 {
		return nil, fmt.Errorf("invalid service token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("missing subject")
	}

	return &UserContext{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}

// ExtractUserFromContext extracts the caller from a request context
func ExtractUserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	return user, ok
}

// ExtractTokenFromHeader extracts a bearer token from the Authorization header
func ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// ExtractTokenFromQuery extracts a token from the query string (for SSE
// clients that cannot set headers)
func ExtractTokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}
