package middleware

import (
	"errors"
	"net/http"
	"time"

	"mood-journal/internal/apperr"

	"github.com/labstack/echo/v4"
)

// HTTPRecorder *metrics.Metrics 實作
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, status int, d time.Duration)
}

// Metrics 以路由樣板（如 /api/entries/:id）記錄請求數與延遲
func Metrics(rec HTTPRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			rec.RecordHTTPRequest(c.Request().Method, path, responseStatus(c, err), time.Since(start))
			return err
		}
	}
}

// responseStatus 錯誤尚未寫出時依錯誤推算最終狀態碼
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return apperr.Status(err)
	}
	return http.StatusInternalServerError
}
