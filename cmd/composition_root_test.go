package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subcontract/internal/core/domain/model/kernel"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() Config {
	cfg, _ := LoadConfig()
	cfg.Storage = StorageMemory
	return cfg
}

func TestCompositionRoot_MemoryStorage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	root, err := NewCompositionRoot(memoryConfig(), logger, nil, client)
	require.NoError(t, err)

	t.Run("should serve the api without a database", func(t *testing.T) {
		e := echo.New()
		root.CreateServer().Register(e)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/overdue?asOf=2024-04-01", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("should start and stop the jobs", func(t *testing.T) {
		manager := root.CreateJobManager()

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}

func TestCompositionRoot_MemorySeed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	product := kernel.NewUUID()
	warehouse := kernel.NewUUID()

	t.Run("should accept orders for seeded products", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"products": [{"id": "`+product.String()+`", "name": "Cotton fabric", "code": "FAB-01"}],
			"warehouses": ["`+warehouse.String()+`"]
		}`), 0o600))
		cfg := memoryConfig()
		cfg.MemorySeedFile = path

		root, err := NewCompositionRoot(cfg, logger, nil, nil)
		require.NoError(t, err)

		e := echo.New()
		root.CreateServer().Register(e)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{
			"number": "SC-001",
			"subcontractorId": "`+kernel.NewUUID().String()+`",
			"subcontractorName": "Acme Dyeing",
			"operation": "dyeing",
			"issuedDate": "2024-03-01",
			"items": [{"productId": "`+product.String()+`", "issuedQty": 100}]
		}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "SC-001")
	})

	t.Run("should fail on an unreadable seed", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.MemorySeedFile = filepath.Join(t.TempDir(), "missing.json")

		_, err := NewCompositionRoot(cfg, logger, nil, nil)

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
