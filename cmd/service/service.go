package main

import (
	"context"
	"fmt"
	"os"

	"north-trips/internal/cache"
	"north-trips/internal/config"
	"north-trips/internal/database"
	"north-trips/internal/handler/auth"
	"north-trips/internal/pdf"
	"north-trips/internal/router"
	"north-trips/internal/service"
	"north-trips/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
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

var (
	loadConfig      = func() (*config.Config, error) { return config.Load() }
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	ensureAdmin     = service.EnsureAdmin
	newWorkerPool   = worker.NewPool
	newPDFConverter = func(path string) service.PDFConverter { return pdf.New(path) }
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// configureLogger JSON 格式輸出，等級由 LOG_LEVEL 控制
func configureLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(lvl)
	return nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	if err := configureLogger(cfg.LogLevel); err != nil {
		return err
	}
	ctx := context.Background()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	// 回滾並執行遷移
	if cfg.ResetDB {
		logrus.Warn("RESET_DB set, rolling back all migrations")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	created, err := ensureAdmin(ctx, db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("建立管理員失敗: %w", err)
	}
	if created {
		logrus.WithField("email", cfg.AdminEmail).Info("seeded admin account")
	}

	// 發票 PDF 轉換共用的 worker pool
	wp := newWorkerPool(cfg.InvoiceWorkers)
	defer wp.Stop()
	renderer := service.NewInvoiceRenderer(wp, newPDFConverter(cfg.WkhtmltopdfPath))

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.UploadLimit))

	router.Setup(e, db, rdb, renderer, auth.Options{
		TokenTTL:     cfg.TokenTTL,
		CookieSecure: cfg.CookieSecure,
	})

	logrus.WithField("addr", cfg.HTTPAddr).Info("server starting")
	return startServer(e, cfg.HTTPAddr)
}
