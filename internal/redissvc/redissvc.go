// Package redissvc keeps the dashboard cache and the import history in Redis.
package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

const (
	DashboardKey     = "dashboard:metrics"
	ImportHistoryKey = "imports:history"
)

type RedisService struct {
	rdb         *redis.Client
	ttl         time.Duration
	historySize int64
	log         *logrus.Entry
}

// NewRedisService wraps an existing client. A ttl of 0 keeps cached
// dashboards until the next import invalidates them.
func NewRedisService(rdb *redis.Client, ttl time.Duration, historySize int64, log *logrus.Entry) *RedisService {
	if historySize <= 0 {
		historySize = 50
	}
	return &RedisService{
		rdb:         rdb,
		ttl:         ttl,
		historySize: historySize,
		log:         log.WithField("component", "redis"),
	}
}

func (s *RedisService) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// CachedMetrics returns the cached dashboard. The bool is false on a miss.
func (s *RedisService) CachedMetrics(ctx context.Context) (repo.Metrics, bool, error) {
	data, err := s.rdb.Get(ctx, DashboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return repo.Metrics{}, false, nil
	}
	if err != nil {
		return repo.Metrics{}, false, err
	}

	var m repo.Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return repo.Metrics{}, false, fmt.Errorf("decode cached dashboard: %w", err)
	}
	return m, true, nil
}

func (s *RedisService) CacheMetrics(ctx context.Context, m repo.Metrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, DashboardKey, data, s.ttl).Err()
}

func (s *RedisService) InvalidateDashboard(ctx context.Context) error {
	return s.rdb.Del(ctx, DashboardKey).Err()
}

// RecordImport appends the report to the capped import history.
func (s *RedisService) RecordImport(ctx context.Context, r ingest.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, ImportHistoryKey, data)
		pipe.LTrim(ctx, ImportHistoryKey, -s.historySize, -1)
		return nil
	})
	return err
}

// RecentImports returns up to limit reports, newest first. A limit of 0
// returns the whole history.
func (s *RedisService) RecentImports(ctx context.Context, limit int64) ([]ingest.Report, error) {
	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	entries, err := s.rdb.LRange(ctx, ImportHistoryKey, start, -1).Result()
	if err != nil {
		return nil, err
	}

	reports := make([]ingest.Report, 0, len(entries))
	for _, item := range entries {
		var r ingest.Report
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			s.log.WithError(err).Warn("skipping malformed import history entry")
			continue
		}
		reports = append(reports, r)
	}
	slices.Reverse(reports)
	return reports, nil
}

// ImportCommitted implements ingest.ImportObserver.
func (s *RedisService) ImportCommitted(ctx context.Context, r ingest.Report) error {
	return errors.Join(
		s.InvalidateDashboard(ctx),
		s.RecordImport(ctx, r),
	)
}

// CachedMetricsRepository serves the dashboard from Redis and falls back to
// the wrapped repository on a miss or a Redis error.
type CachedMetricsRepository struct {
	next  repo.MetricsRepository
	cache *RedisService
}

func NewCachedMetricsRepository(next repo.MetricsRepository, cache *RedisService) *CachedMetricsRepository {
	return &CachedMetricsRepository{next: next, cache: cache}
}

// GetDashboardMetrics implements repo.MetricsRepository.
func (c *CachedMetricsRepository) GetDashboardMetrics(ctx context.Context) (repo.Metrics, error) {
	m, ok, err := c.cache.CachedMetrics(ctx)
	if err != nil {
		c.cache.log.WithError(err).Warn("dashboard cache read failed")
	}
	if ok {
		return m, nil
	}

	m, err = c.next.GetDashboardMetrics(ctx)
	if err != nil {
		return repo.Metrics{}, err
	}
	if err := c.cache.CacheMetrics(ctx, m); err != nil {
		c.cache.log.WithError(err).Warn("dashboard cache write failed")
	}
	return m, nil
}
