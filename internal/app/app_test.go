package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/pos-dashboard/internal/config"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
	"github.com/rogerio-castellano/pos-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Store:  config.StoreConfig{Driver: "memory"},
		Redis:  config.RedisConfig{HistorySize: 10},
		Ingest: config.IngestConfig{
			CodeWidth:  5,
			Encodings:  []string{"utf-8"},
			Delimiters: []string{";"},
		},
	}
}

func TestNew_MemoryWithoutRedis(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repo.InMemoryProductRepository{}, a.Products)
	assert.IsType(t, &repo.StoreMetricsRepository{}, a.Metrics)
	assert.Nil(t, a.Redis)
	assert.Len(t, a.ServerOptions(), 2)
}

func TestNew_ImportInvalidatesCachedDashboard(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Redis.Addr = mr.Addr()

	ctx := context.Background()
	a, err := New(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer a.Close()
	require.IsType(t, &redissvc.CachedMetricsRepository{}, a.Metrics)

	m, err := a.Metrics.GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Zero(t, m.TotalProducts)
	assert.True(t, mr.Exists(redissvc.DashboardKey))

	_, err = a.Importer.Import(ctx, "pos.csv", []byte("producto;codigo\nSoap;1\n"))
	require.NoError(t, err)
	assert.False(t, mr.Exists(redissvc.DashboardKey))

	m, err = a.Metrics.GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalProducts)

	history, err := a.Redis.RecentImports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "pos.csv", history[0].Filename)
}

func TestNew_RedisUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, logging.Discard())
	assert.ErrorContains(t, err, "connect redis")
}
