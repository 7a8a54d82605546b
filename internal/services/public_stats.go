package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/repositories"
)

const publicStatsCacheKey = "public:stats"

type PublicStatsServiceInterface interface {
	GetPublicStats(ctx context.Context) (*dto.PublicStatsDTO, error)
}

// PublicStatsService отдает обезличенные счетчики для публичной витрины.
// Эндпоинт не требует авторизации, поэтому прячется за коротким Redis-кешем.
type PublicStatsService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewPublicStatsService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) PublicStatsServiceInterface {
	return &PublicStatsService{
		dashboardRepo: dashboardRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *PublicStatsService) GetPublicStats(ctx context.Context) (*dto.PublicStatsDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, publicStatsCacheKey); err == nil {
		var stats dto.PublicStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.dashboardRepo.PublicCounters(ctx)
	if err != nil {
		s.logger.Error("Не удалось собрать публичные счетчики", zap.Error(err))
		return nil, err
	}

	topCategories, err := s.dashboardRepo.TopCategories(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopCategories = topCategories
	stats.GeneratedAt = s.now().UTC().Format(time.RFC3339)

	if payload, err := json.Marshal(stats); err == nil {
		if errSet := s.cacheRepo.Set(ctx, publicStatsCacheKey, string(payload), s.cacheTTL); errSet != nil {
			s.logger.Warn("Не удалось закешировать публичные счетчики", zap.Error(errSet))
		}
	}
	return stats, nil
}
