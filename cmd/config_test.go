package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, 10*time.Minute, cfg.DirectoryCacheTTL)
		assert.Equal(t, "0 */5 * * * *", cfg.OverdueScanSchedule)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("should read the environment", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("STORAGE", "memory")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("DIRECTORY_CACHE_TTL", "30s")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_NAME", "orders")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 30*time.Second, cfg.DirectoryCacheTTL)
		assert.Contains(t, cfg.DSN(), "host=db")
		assert.Contains(t, cfg.DSN(), "dbname=orders")
	})

	t.Run("should reject an unknown storage", func(t *testing.T) {
		t.Setenv("STORAGE", "sqlite")

		_, err := LoadConfig()

		require.ErrorContains(t, err, "STORAGE")
	})

	t.Run("should reject a malformed duration", func(t *testing.T) {
		t.Setenv("DIRECTORY_CACHE_TTL", "soon")

		_, err := LoadConfig()

		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("should write json when asked", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(Config{LogFormat: "json"}, &buf).Info("hello", "component", "test")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "test", line["component"])
	})

	t.Run("should write text otherwise", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(Config{LogFormat: "text"}, &buf).Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})
}
