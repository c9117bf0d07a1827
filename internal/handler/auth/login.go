// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"mood-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 email 與 password 進行驗證，回傳存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := bindAndValidate(c, &req, "Missing fields"); err != nil {
			return err
		}
		token, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
	}
}
