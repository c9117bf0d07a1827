// File: internal/router/router.go
package router

import (
	"net/http"

	"mood-journal/internal/cache"
	"mood-journal/internal/handler"
	"mood-journal/internal/handler/auth"
	"mood-journal/internal/handler/entries"
	"mood-journal/internal/middleware"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由需要的服務；Cache 與 Metrics 可為 nil
type Deps struct {
	Auth    auth.Authenticator
	Tokens  middleware.TokenVerifier
	Entries entries.EntryService
	Store   handler.Pinger
	Cache   cache.Cache
	Metrics http.Handler
}

// Setup 註冊所有路由
func Setup(e *echo.Echo, d Deps) {
	e.GET("/", handler.LivenessHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.Store, d.Cache))

	// 註冊與登入
	apiAuth := api.Group("/auth")
	apiAuth.POST("/signup", auth.SignupHandler(d.Auth))
	apiAuth.POST("/login", auth.LoginHandler(d.Auth))
	apiAuth.POST("/google", auth.GoogleLoginHandler(d.Auth))

	// 心情紀錄，一律需登入
	apiEntries := api.Group("/entries", middleware.RequireAuth(d.Tokens))
	apiEntries.POST("", entries.CreateEntryHandler(d.Entries))
	apiEntries.GET("", entries.ListEntriesHandler(d.Entries))
	apiEntries.DELETE("/:id", entries.DeleteEntryHandler(d.Entries))
}
