package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Address())
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestParsePrefixedSections(t *testing.T) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{
		"DATABASE_DRIVER":         "sqlite",
		"DATABASE_URL":            "file:dev.db",
		"DATABASE_MAX_OPEN_CONNS": "1",
		"AUTH_JWT_SECRET":         "s3cret",
		"AUTH_ISSUER":             "backoffice",
		"HTTP_PORT":               "9090",
	}})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:dev.db", cfg.Database.URL)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "backoffice", cfg.Auth.Issuer)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Address())
}
