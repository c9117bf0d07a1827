// @title        Mood Journal API
// @version      1.0
// @description  心情日記後端 API 文件
// @host         localhost:4000
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mood-journal/internal/cache"
	"mood-journal/internal/config"
	"mood-journal/internal/database"
	"mood-journal/internal/handler"
	"mood-journal/internal/logging"
	"mood-journal/internal/metrics"
	"mood-journal/internal/middleware"
	"mood-journal/internal/router"
	"mood-journal/internal/service"
	"mood-journal/internal/store"
	"mood-journal/internal/store/mongostore"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "mood-journal/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// backend Postgres 或 MongoDB 的共同介面
type backend interface {
	service.UserStore
	service.EntryStore
	handler.Pinger
}

var (
	loadConfig      = config.Load
	newLogger       = logging.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	openMongo       = openMongoStore
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	notifyContext   = func(ctx context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	}
	exitFunc = os.Exit
)

func openMongoStore(ctx context.Context, uri string) (backend, func(), error) {
	client, db, err := database.NewMongoDatabase(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	st := mongostore.New(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("建立 MongoDB index 失敗: %w", err)
	}
	return st, closeFn, nil
}

func openStore(ctx context.Context, cfg *config.Config) (backend, func(), error) {
	if cfg.StoreDriver == config.DriverMongo {
		st, closeFn, err := openMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("MongoDB 連線失敗: %w", err)
		}
		return st, closeFn, nil
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("DB 連線失敗: %w", err)
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("Migration 執行失敗: %w", err)
	}
	return store.NewPostgres(db), db.Close, nil
}

func newEcho(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics, d router.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(m))
	e.Use(middleware.CORS(cfg.AllowedOrigins()))
	e.Use(echomw.Recover())

	router.Setup(e, d)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	m := metrics.New()

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.WithField("driver", cfg.StoreDriver).Info("store ready")

	// 未設定 REDIS_ADDR 時 entryCache 保持 nil interface
	var entryCache cache.Cache
	if cfg.CacheEnabled() {
		rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
		entryCache = rdb
		logger.WithField("ttl", cfg.EntryCacheTTL.String()).Info("entry cache enabled")
	}

	authSvc := service.NewAuthService(service.AuthConfig{
		Users:      st,
		Tokens:     service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Google:     service.NewGoogleVerifier(cfg.GoogleClientID),
		BcryptCost: cfg.BcryptCost,
		Metrics:    m,
		Logger:     logger,
	})
	if cfg.GoogleClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID 未設定，Google 登入將一律失敗")
	}
	entrySvc := service.NewEntryService(service.EntryConfig{
		Entries:  st,
		Cache:    entryCache,
		CacheTTL: cfg.EntryCacheTTL,
		Metrics:  m,
		Logger:   logger,
	})

	e := newEcho(cfg, logger, m, router.Deps{
		Auth:    authSvc,
		Tokens:  authSvc,
		Entries: entrySvc,
		Store:   st,
		Cache:   entryCache,
		Metrics: m.Handler(),
	})

	sigCtx, stop := notifyContext(ctx)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.Addr()) }()
	logger.WithField("addr", cfg.Addr()).Info("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server 啟動失敗: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown 失敗: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.ShutdownTimeout
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
