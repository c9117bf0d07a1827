// File: internal/handler/error.go
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"mood-journal/internal/apperr"
	"mood-journal/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorHandler 所有錯誤統一輸出 {"message": ...}；5xx 記錄完整錯誤，對外只回 Server error
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := resolveError(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).Error("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, dto.HTTPError{Message: msg})
		}
		if werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}

func resolveError(err error) (int, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return apperr.Status(err), apperr.PublicMessage(err)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, apperr.PublicMessage(err)
		}
		if s, ok := he.Message.(string); ok && s != "" {
			return he.Code, s
		}
		if he.Message != nil {
			return he.Code, fmt.Sprint(he.Message)
		}
		return he.Code, http.StatusText(he.Code)
	}
	return http.StatusInternalServerError, apperr.PublicMessage(err)
}
