// File: internal/handler/auth/google.go
package auth

import (
	"net/http"

	"mood-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

// GoogleLoginHandler 以 Google ID token 登入，首次登入自動建立帳號
// @Summary     Google 登入
// @Description 驗證 Google Identity Services 回傳的 credential，回傳 token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.GoogleLoginRequest true "Google credential"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/google [post]
func GoogleLoginHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.GoogleLoginRequest
		if err := bindAndValidate(c, &req, "Missing idToken"); err != nil {
			return err
		}
		token, err := svc.GoogleLogin(c.Request().Context(), req.Credential)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
	}
}
