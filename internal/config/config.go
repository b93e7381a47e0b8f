package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SquareProduction = "production"
	SquareSandbox    = "sandbox"
)

type AppConfig struct {
	Port     string
	LogLevel string
}

type SquareConfig struct {
	AccessToken string
	Environment string
	LocationID  string
	Version     string
	Timeout     time.Duration
}

type ResendConfig struct {
	APIKey string
	From   string
	To     []string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// Enabled reports whether a database was configured. Without one the
// submission store falls back to memory.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

type Config struct {
	App         AppConfig
	Square      SquareConfig
	Resend      ResendConfig
	Postgres    PostgresConfig
	DedupWindow time.Duration
}

func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Square.AccessToken = os.Getenv("SQUARE_ACCESS_TOKEN")
	if cfg.Square.AccessToken == "" {
		return nil, errors.New("SQUARE_ACCESS_TOKEN is required")
	}
	cfg.Square.Environment = getEnv("SQUARE_ENVIRONMENT", SquareSandbox)
	if cfg.Square.Environment != SquareProduction && cfg.Square.Environment != SquareSandbox {
		return nil, fmt.Errorf("SQUARE_ENVIRONMENT must be %q or %q, got %q", SquareProduction, SquareSandbox, cfg.Square.Environment)
	}
	cfg.Square.LocationID = getEnv("SQUARE_LOCATION_ID", "default")
	cfg.Square.Version = getEnv("SQUARE_VERSION", "2025-07-16")

	timeout, err := getDuration("SQUARE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Square.Timeout = timeout

	cfg.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Resend.From = getEnv("NOTIFY_FROM", "notifications@kcc.wgmtx.net")
	cfg.Resend.To = []string{getEnv("NOTIFY_TO", "hosting@wgmtx.com")}

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	cfg.Postgres.Port = getEnv("DB_PORT", "5432")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	if cfg.Postgres.Enabled() {
		if cfg.Postgres.User == "" {
			return nil, errors.New("DB_USER is required when DB_HOST is set")
		}
		if cfg.Postgres.DBName == "" {
			return nil, errors.New("DB_NAME is required when DB_HOST is set")
		}
	}

	window, err := getDuration("DEDUP_WINDOW", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.DedupWindow = window

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, raw)
	}
	return time.Duration(secs) * time.Second, nil
}
