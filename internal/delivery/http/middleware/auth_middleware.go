// Package middleware contains the HTTP middlewares of the delivery layer.
package middleware

import (
	"strings"

	"linkbio/internal/delivery/http/response"
	"linkbio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUserID   = "userID"
	KeyUsername = "username"
)

// AuthMiddleware validates bearer session tokens and exposes the caller's
// identity on the echo context. It fails closed on every parse problem.
type AuthMiddleware struct {
	accounts usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accounts usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// BearerToken extracts the token from the Authorization header. It returns an
// empty string when the header is absent or not in Bearer form.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}

	return strings.TrimSpace(token)
}

// Authenticate is the middleware that guards owner-only routes.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "missing bearer token")
		}

		claims, err := m.accounts.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "invalid or expired session")
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUsername, claims.Username)

		return next(c)
	}
}
