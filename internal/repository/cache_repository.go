package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acadsharsh/mockera12/internal/models"
)

const (
	keyPublishedTests = "catalog:published_tests"
	keyStatsOverview  = "stats:overview"
)

// CacheRepository caches read-heavy catalog and dashboard payloads.
// Both are invalidated by TTL only: the catalog is read-only in this service
// and the dashboard tolerates slightly stale numbers.
type CacheRepository interface {
	GetPublishedTests(ctx context.Context) ([]models.TestSummary, error)
	SetPublishedTests(ctx context.Context, tests []models.TestSummary, ttl time.Duration) error

	GetStatsOverview(ctx context.Context) (*models.StatsOverview, error)
	SetStatsOverview(ctx context.Context, overview *models.StatsOverview, ttl time.Duration) error
}

type cacheRepository struct {
	client *redis.Client
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(client *redis.Client) CacheRepository {
	return &cacheRepository{
		client: client,
	}
}

func (r *cacheRepository) GetPublishedTests(ctx context.Context) ([]models.TestSummary, error) {
	val, err := r.client.Get(ctx, keyPublishedTests).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached tests: %w", err)
	}

	var tests []models.TestSummary
	if err := json.Unmarshal([]byte(val), &tests); err != nil {
		return nil, fmt.Errorf("failed to decode cached tests: %w", err)
	}
	return tests, nil
}

func (r *cacheRepository) SetPublishedTests(ctx context.Context, tests []models.TestSummary, ttl time.Duration) error {
	data, err := json.Marshal(tests)
	if err != nil {
		return fmt.Errorf("failed to encode tests for cache: %w", err)
	}
	return r.client.Set(ctx, keyPublishedTests, data, ttl).Err()
}

func (r *cacheRepository) GetStatsOverview(ctx context.Context) (*models.StatsOverview, error) {
	val, err := r.client.Get(ctx, keyStatsOverview).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached stats: %w", err)
	}

	overview := &models.StatsOverview{}
	if err := json.Unmarshal([]byte(val), overview); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	return overview, nil
}

func (r *cacheRepository) SetStatsOverview(ctx context.Context, overview *models.StatsOverview, ttl time.Duration) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("failed to encode stats for cache: %w", err)
	}
	return r.client.Set(ctx, keyStatsOverview, data, ttl).Err()
}
