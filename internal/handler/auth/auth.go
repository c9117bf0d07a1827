// File: internal/handler/auth/auth.go
package auth

import (
	"context"

	"mood-journal/internal/apperr"

	"github.com/labstack/echo/v4"
)

// Authenticator *service.AuthService 實作
type Authenticator interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GoogleLogin(ctx context.Context, credential string) (string, error)
}

const msgInvalidBody = "Invalid request body"

// bindAndValidate 先 Bind 再 Validate；驗證失敗一律回 invalid 訊息
func bindAndValidate(c echo.Context, req any, invalid string) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation(msgInvalidBody)
	}
	if err := c.Validate(req); err != nil {
		return apperr.Validation(invalid)
	}
	return nil
}
