package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"HTTP_PORT", "STORE_BACKEND", "REDIS_DB", "DB_PORT", "KAFKA_BROKERS", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid REDIS_DB")

	t.Setenv("REDIS_DB", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "invalid SHUTDOWN_TIMEOUT")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := (&Config{StoreBackend: BackendMemory}).OpenStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &storage.MemoryStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &Config{StoreBackend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "shop.db")}
		s, err := cfg.OpenStore(ctx)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &storage.SQLiteStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := (&Config{StoreBackend: BackendRedis, RedisAddr: mr.Addr()}).OpenStore(ctx)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &storage.RedisStore{}, s)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := (&Config{StoreBackend: "etcd"}).OpenStore(ctx)
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
