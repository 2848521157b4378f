package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config 服務啟動所需的全部設定，來源為環境變數 (可由 .env 補上)
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`

	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	RedisAddr     string `env:"REDIS_ADDR" env-required:"true"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	JWTSecret    string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" env-default:"false"`

	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"admin@northtripsandtravel.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" env-default:"admin786"`
	AdminName     string `env:"ADMIN_NAME" env-default:"Admin"`

	InvoiceWorkers  int    `env:"INVOICE_WORKERS" env-default:"2"`
	WkhtmltopdfPath string `env:"WKHTMLTOPDF_PATH"`
	UploadLimit     string `env:"UPLOAD_LIMIT" env-default:"16M"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	// ResetDB 開發用：啟動時先退回全部 migration 再重建
	ResetDB  bool   `env:"RESET_DB" env-default:"false"`
}

var (
	dotenvLoad = godotenv.Load
	readEnv    = cleanenv.ReadEnv
)

// Load 先讀取 files 指定的 .env (不存在就略過)，再從環境變數填入 Config
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := dotenvLoad(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := readEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.InvoiceWorkers <= 0 {
		return nil, fmt.Errorf("INVOICE_WORKERS must be positive, got %d", cfg.InvoiceWorkers)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
