// File: internal/handler/ping.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"mood-journal/internal/apperr"
	"mood-journal/internal/cache"
	"mood-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

// LivenessText GET / 回應內容
const LivenessText = "mood-journal is running"

// Pinger 儲存層健康檢查
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivenessHandler 只確認程序存活，不碰外部依賴
func LivenessHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, LivenessText)
	}
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取（若有啟用）連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db Pinger, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rctx := ctx.Request().Context()
		if err := db.Ping(rctx); err != nil {
			return apperr.Internal(fmt.Errorf("database unhealthy: %w", err))
		}
		if c != nil {
			if err := c.Ping(rctx).Err(); err != nil {
				return apperr.Internal(fmt.Errorf("cache unhealthy: %w", err))
			}
		}
		return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "pong"})
	}
}
