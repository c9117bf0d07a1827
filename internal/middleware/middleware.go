package middleware

import (
	"strings"

	"mood-journal/internal/apperr"
	"mood-journal/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier *service.AuthService 實作
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

func extractClaims(c echo.Context, v TokenVerifier) (*service.Claims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperr.Auth("Missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, apperr.Auth("Invalid authorization header format")
	}
	claims, err := v.VerifyToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, apperr.AuthWrap("Invalid token", err)
	}
	return claims, nil
}

// RequireAuth 驗證 bearer token，通過後把 claims 放進 context
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom 取出 RequireAuth 放入的 claims
func ClaimsFrom(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.Claims)
	return claims, ok && claims != nil
}
