package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/victor-devv/todo-list/internal/tokens"
)

type AuthMiddleware struct {
	Tokens *tokens.Service
}

func NewAuthMiddleware(t *tokens.Service) *AuthMiddleware {
	return &AuthMiddleware{Tokens: t}
}

// RequireAuth verifies the bearer token and installs the caller's identity
// into the echo context. Invalid, expired and missing tokens are all 401,
// the body never says which.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
