package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/repository"
)

type StatsService interface {
	Overview(ctx context.Context) (*models.StatsOverview, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewStatsService creates the creator dashboard service. cacheRepo may be nil.
func NewStatsService(statsRepo repository.StatsRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

func (s *statsService) Overview(ctx context.Context) (*models.StatsOverview, error) {
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.GetStatsOverview(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	overview, err := s.statsRepo.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if s.cacheRepo != nil {
		_ = s.cacheRepo.SetStatsOverview(ctx, overview, s.cacheTTL)
	}
	return overview, nil
}
