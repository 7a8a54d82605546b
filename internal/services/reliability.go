package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	"lending-system/pkg/config"
)

// Нейтральный балл для пользователей без истории выдач.
const neutralReliabilityScore = 75.0

type ReliabilityServiceInterface interface {
	RecalculateAll(ctx context.Context) (int, error)
	RecalculateUser(ctx context.Context, userID uint64) (*entities.UserReliability, error)
	GetReliability(ctx context.Context, userID uint64) (*dto.UserReliabilityDTO, error)
	GetReliabilityList(ctx context.Context, grade string) ([]dto.UserReliabilityDTO, error)
}

// ReliabilityService считает рейтинг надежности заемщика по его истории
// возвратов и неявок.
type ReliabilityService struct {
	analyticsRepo repositories.AnalyticsRepositoryInterface
	loanRepo      repositories.LoanRepositoryInterface
	cfg           config.LendingConfig
	logger        *zap.Logger
	now           func() time.Time
}

func NewReliabilityService(
	analyticsRepo repositories.AnalyticsRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	cfg config.LendingConfig,
	logger *zap.Logger,
) ReliabilityServiceInterface {
	return &ReliabilityService{
		analyticsRepo: analyticsRepo,
		loanRepo:      loanRepo,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// ComputeReliabilityScore — чистая формула рейтинга.
// onTimeRate и noShowRate в [0,1], веса из конфигурации; результат в [0,100].
func ComputeReliabilityScore(onTimeRate, noShowRate, onTimeWeight, noShowWeight float64) float64 {
	score := 100 * (onTimeWeight*onTimeRate + noShowWeight*(1-noShowRate))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// GradeForScore переводит балл в оценку.
func GradeForScore(score float64) string {
	switch {
	case score >= 90:
		return entities.ReliabilityGradeExcellent
	case score >= 75:
		return entities.ReliabilityGradeGood
	case score >= 50:
		return entities.ReliabilityGradeFair
	default:
		return entities.ReliabilityGradePoor
	}
}

func (s *ReliabilityService) buildRecord(counts *repositories.ReliabilityCounts, userID uint64, computedAt time.Time) entities.UserReliability {
	record := entities.UserReliability{
		UserID:        userID,
		TotalLoans:    counts.TotalFinished,
		OnTimeReturns: counts.OnTimeReturns,
		LateReturns:   counts.LateReturns,
		NoShows:       counts.NoShows,
		ComputedAt:    computedAt,
	}

	if counts.TotalFinished == 0 && counts.NoShows == 0 {
		// Без истории даем нейтральный балл, а не нули
		record.Score = neutralReliabilityScore
		record.Grade = GradeForScore(record.Score)
		return record
	}

	if counts.TotalFinished > 0 {
		record.OnTimeRate = float64(counts.OnTimeReturns) / float64(counts.TotalFinished)
	}
	if counts.ApprovedTotal > 0 {
		record.NoShowRate = float64(counts.NoShows) / float64(counts.ApprovedTotal)
	}
	record.Score = ComputeReliabilityScore(record.OnTimeRate, record.NoShowRate, s.cfg.OnTimeWeight, s.cfg.NoShowWeight)
	record.Grade = GradeForScore(record.Score)
	return record
}

func (s *ReliabilityService) RecalculateUser(ctx context.Context, userID uint64) (*entities.UserReliability, error) {
	counts, err := s.loanRepo.GetReliabilityCounts(ctx, userID)
	if err != nil {
		s.logger.Error("Не удалось получить статистику выдач пользователя",
			zap.Uint64("userID", userID), zap.Error(err))
		return nil, err
	}

	record := s.buildRecord(counts, userID, s.now())
	if err := s.analyticsRepo.UpsertReliability(ctx, record); err != nil {
		s.logger.Error("Не удалось сохранить рейтинг надежности",
			zap.Uint64("userID", userID), zap.Error(err))
		return nil, err
	}
	return &record, nil
}

func (s *ReliabilityService) RecalculateAll(ctx context.Context) (int, error) {
	userIDs, err := s.loanRepo.GetBorrowerIDs(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, userID := range userIDs {
		if _, err := s.RecalculateUser(ctx, userID); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Info("Рейтинги надежности пересчитаны", zap.Int("userCount", count))
	return count, nil
}

func (s *ReliabilityService) GetReliability(ctx context.Context, userID uint64) (*dto.UserReliabilityDTO, error) {
	record, err := s.analyticsRepo.GetReliability(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toReliabilityDTO(*record)
	return &out, nil
}

func (s *ReliabilityService) GetReliabilityList(ctx context.Context, grade string) ([]dto.UserReliabilityDTO, error) {
	records, err := s.analyticsRepo.GetReliabilityList(ctx, grade)
	if err != nil {
		return nil, err
	}
	list := make([]dto.UserReliabilityDTO, 0, len(records))
	for _, r := range records {
		list = append(list, toReliabilityDTO(r))
	}
	return list, nil
}

func toReliabilityDTO(r entities.UserReliability) dto.UserReliabilityDTO {
	out := dto.UserReliabilityDTO{
		UserID:        r.UserID,
		TotalLoans:    r.TotalLoans,
		OnTimeReturns: r.OnTimeReturns,
		LateReturns:   r.LateReturns,
		NoShows:       r.NoShows,
		OnTimeRate:    r.OnTimeRate,
		NoShowRate:    r.NoShowRate,
		Score:         r.Score,
		Grade:         r.Grade,
		ComputedAt:    r.ComputedAt.Format(time.RFC3339),
	}
	if r.User != nil {
		out.Fio = r.User.Fio
	}
	return out
}
