package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "stylelane", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, config.BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, 10, cfg.Redis.TxMaxRetries)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
}

func TestLoad_PoolDesdeEnv(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "4")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "no-es-duracion")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int32(40), cfg.DB.MaxConns)
	assert.Equal(t, int32(4), cfg.DB.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.DB.HealthCheckPeriod)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "REDIS")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "dynamodb")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "stylelane", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stylelane?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
