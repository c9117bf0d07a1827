// File: internal/handler/auth/signup.go
package auth

import (
	"errors"
	"net/http"

	"mood-journal/internal/apperr"
	"mood-journal/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	msgMissingFields   = "Missing fields"
	msgPasswordTooLong = "Password must be at most 72 bytes"
)

// signupInvalidMessage 缺欄位優先，其次才是密碼過長
func signupInvalidMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return msgMissingFields
	}
	tooLong := false
	for _, fe := range fields {
		if fe.Tag() == "required" {
			return msgMissingFields
		}
		if fe.Field() == "Password" && fe.Tag() == "max" {
			tooLong = true
		}
	}
	if tooLong {
		return msgPasswordTooLong
	}
	return msgMissingFields
}

// SignupHandler 建立 email/密碼帳號並回傳 JWT
// @Summary     註冊
// @Description 以 name、email、password 建立帳號，成功回傳 token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.SignupRequest true "註冊資料"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/signup [post]
func SignupHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SignupRequest
		if err := c.Bind(&req); err != nil {
			return apperr.Validation(msgInvalidBody)
		}
		if err := c.Validate(&req); err != nil {
			return apperr.Validation(signupInvalidMessage(err))
		}
		token, err := svc.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
	}
}
