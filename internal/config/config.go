// Package config 於啟動時一次讀入環境變數（可選 .env），之後以唯讀結構注入各元件。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// 本機前端開發伺服器
var devOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

type Config struct {
	Port            int           `mapstructure:"port"`
	StoreDriver     string        `mapstructure:"store_driver"`
	DatabaseURL     string        `mapstructure:"database_url"`
	MongoURI        string        `mapstructure:"mongodb_uri"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	BcryptCost      int           `mapstructure:"bcrypt_cost"`
	GoogleClientID  string        `mapstructure:"google_client_id"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	FrontendURLAlt  string        `mapstructure:"frontend_url_alt"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	EntryCacheTTL   time.Duration `mapstructure:"entry_cache_ttl"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// dotEnvFiles 測試可覆寫
var dotEnvFiles = []string{".env"}

// Load 讀取 .env（不存在則略過）與環境變數，套用預設值並驗證
func Load() (*Config, error) {
	for _, f := range dotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("讀取 %s 失敗: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析設定失敗: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 4000)
	v.SetDefault("store_driver", DriverPostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017/wellness_journal")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "168h") // 7 天
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("google_client_id", "")
	v.SetDefault("frontend_url", "")
	v.SetDefault("frontend_url_alt", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("entry_cache_ttl", "5m")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_timeout", "10s")
}

// Validate 檢查必要欄位與值域
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("環境變數 JWT_SECRET 未設定")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("無效的 PORT: %d", c.Port)
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("環境變數 DATABASE_URL 未設定")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("環境變數 MONGODB_URI 未設定")
		}
	default:
		return fmt.Errorf("無效的 STORE_DRIVER: %q", c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("無效的 TOKEN_TTL: %s", c.TokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("無效的 BCRYPT_COST: %d", c.BcryptCost)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("無效的 REDIS_DB: %d", c.RedisDB)
	}
	return nil
}

// Addr echo 監聽位址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CacheEnabled 有設定 REDIS_ADDR 才啟用 entries 快取
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// AllowedOrigins 只放 origin（無結尾斜線、無路徑）
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, 4)
	for _, o := range append([]string{c.FrontendURL, c.FrontendURLAlt}, devOrigins...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
