package service

import (
	"context"
	"encoding/json"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"
)

// DashboardService serves the aggregate summary, cache-aside with a short TTL.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}

type dashboardService struct {
	repo  repository.DashboardRepository
	cache *RedisCache
}

func NewDashboardService(repo repository.DashboardRepository, cache *RedisCache) DashboardService {
	return &dashboardService{repo: repo, cache: cache}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if data, ok := s.cache.GetJSON(ctx, keyDashboardSummary); ok {
		var cached dto.DashboardSummary
		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(summary); err == nil {
		s.cache.SetJSON(ctx, keyDashboardSummary, data, dashboardTTL)
	}
	return summary, nil
}
