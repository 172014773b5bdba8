package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config menampung seluruh setting aplikasi yang dibaca dari ENV.
type Config struct {
	Port           string        `env:"PORT" envDefault:"5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	Timezone       string        `env:"APP_TIMEZONE" envDefault:"UTC"`

	DatabaseURL        string `env:"DATABASE_URL"`
	DBUser             string `env:"DB_USER"`
	DBPassword         string `env:"DB_PASSWORD"`
	DBHost             string `env:"DB_HOST" envDefault:"localhost"`
	DBPort             string `env:"DB_PORT" envDefault:"5432"`
	DBName             string `env:"DB_NAME" envDefault:"tuition"`
	DBSSLMode          string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns     int    `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns     int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBStatementTimeout int    `env:"DB_STATEMENT_TIMEOUT_MS" envDefault:"3000"`
	DBMigrate          bool   `env:"DB_MIGRATE" envDefault:"true"`
	DBAutoMigrate      bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	DBSeed             bool   `env:"DB_SEED" envDefault:"false"`
	DBLogLevel         string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitMax     int      `env:"RATE_LIMIT_MAX" envDefault:"100"`

	// Kosong = generator bulanan tidak dijalankan
	BillingCron          string `env:"BILLING_CRON"`
	BillingDefaultAmount string `env:"BILLING_DEFAULT_AMOUNT"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] .env tidak ditemukan, memakai ENV sistem")
		} else {
			log.Println("[CONFIG] .env berhasil dimuat")
		}
	} else {
		log.Println("[CONFIG] Running in Railway, memakai ENV sistem")
	}
}

// Load membaca .env (kalau ada) lalu mem-parse ENV ke Config.
func Load() (*Config, error) {
	LoadEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE tidak valid %q: %w", cfg.Timezone, err)
	}
	if _, err := cfg.DefaultBillingAmount(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN membangun connection string postgres. DATABASE_URL menang kalau diisi.
func (c *Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tuition&options=-c%%20statement_timeout%%3D%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode, c.DBStatementTimeout,
	)
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultBillingAmount: nil kalau BILLING_DEFAULT_AMOUNT kosong.
func (c *Config) DefaultBillingAmount() (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.BillingDefaultAmount)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("BILLING_DEFAULT_AMOUNT tidak valid %q: %w", raw, err)
	}
	return &d, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level string) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      ParseGormLogLevel(level),
	}
}

func ParseGormLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !errors.Is(err, gormLogger.ErrRecordNotFound):
		sql, rows := fc()
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
