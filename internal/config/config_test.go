package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/catering-service/internal/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_ENVIRONMENT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DEDUP_WINDOW", "")
	t.Setenv("SQUARE_TIMEOUT", "")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	require.Equal(t, config.SquareSandbox, cfg.Square.Environment)
	require.Equal(t, 30*time.Second, cfg.Square.Timeout)
	require.Equal(t, 24*time.Hour, cfg.DedupWindow)
	require.False(t, cfg.Postgres.Enabled())
}

func TestNewConfig_MissingToken(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "")

	_, err := config.NewConfig()
	require.EqualError(t, err, "SQUARE_ACCESS_TOKEN is required")
}

func TestNewConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_ENVIRONMENT", "staging")

	_, err := config.NewConfig()
	require.Error(t, err)
}

func TestNewConfig_DatabaseRequiresUser(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_ENVIRONMENT", "production")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "")

	_, err := config.NewConfig()
	require.EqualError(t, err, "DB_USER is required when DB_HOST is set")
}

func TestNewConfig_DedupWindowSeconds(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_ENVIRONMENT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DEDUP_WINDOW", "90")

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, cfg.DedupWindow)
}
