package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	"lending-system/pkg/config"
	"lending-system/pkg/types"
)

type UsageAnalyzerServiceInterface interface {
	Recalculate(ctx context.Context) (int, error)
	GetUtilization(ctx context.Context, classification string) ([]entities.EquipmentUtilization, error)
	GetSummary(ctx context.Context) (*dto.UtilizationSummaryDTO, error)
}

// UsageAnalyzerService считает загрузку оборудования за скользящее окно:
// доля дней окна, когда единица была на руках.
type UsageAnalyzerService struct {
	analyticsRepo repositories.AnalyticsRepositoryInterface
	loanRepo      repositories.LoanRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	cfg           config.LendingConfig
	logger        *zap.Logger
	now           func() time.Time
}

func NewUsageAnalyzerService(
	analyticsRepo repositories.AnalyticsRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	cfg config.LendingConfig,
	logger *zap.Logger,
) UsageAnalyzerServiceInterface {
	return &UsageAnalyzerService{
		analyticsRepo: analyticsRepo,
		loanRepo:      loanRepo,
		equipmentRepo: equipmentRepo,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// OverlapDays возвращает длину пересечения интервала [from, to) с окном в днях.
// Если to нулевое (оборудование еще на руках), интервал считается открытым.
func OverlapDays(from, to, windowStart, windowEnd time.Time) float64 {
	if to.IsZero() || to.After(windowEnd) {
		to = windowEnd
	}
	if from.Before(windowStart) {
		from = windowStart
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24
}

// ClassifyUtilization относит долю загрузки к одной из трех корзин.
func ClassifyUtilization(rate, underused, overused float64) string {
	switch {
	case rate < underused:
		return entities.UtilizationUnderused
	case rate > overused:
		return entities.UtilizationOverused
	default:
		return entities.UtilizationNormal
	}
}

func (s *UsageAnalyzerService) Recalculate(ctx context.Context) (int, error) {
	now := s.now()
	windowEnd := now
	windowStart := now.AddDate(0, 0, -s.cfg.UtilizationWindowDays)
	windowDays := float64(s.cfg.UtilizationWindowDays)

	loans, err := s.loanRepo.GetLoansTouchingWindow(ctx, windowStart, windowEnd)
	if err != nil {
		s.logger.Error("Не удалось получить выдачи за окно анализа", zap.Error(err))
		return 0, err
	}

	borrowedDays := make(map[uint64]float64)
	for _, loan := range loans {
		if !loan.CheckedOutAt.Valid {
			continue
		}
		var returnedAt time.Time
		if loan.ReturnedAt.Valid {
			returnedAt = loan.ReturnedAt.Time
		}
		borrowedDays[loan.EquipmentID] += OverlapDays(loan.CheckedOutAt.Time, returnedAt, windowStart, windowEnd)
	}

	// Оборудование без единой выдачи тоже попадает в отчет с нулевой загрузкой
	equipments, _, err := s.equipmentRepo.GetEquipments(ctx, types.Filter{Limit: 0})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, eq := range equipments {
		if eq.Status == entities.EquipmentStatusRetired {
			continue
		}
		days := borrowedDays[eq.ID]
		rate := days / windowDays
		if rate > 1 {
			rate = 1
		}

		record := entities.EquipmentUtilization{
			EquipmentID:     eq.ID,
			WindowStart:     windowStart,
			WindowEnd:       windowEnd,
			BorrowedDays:    days,
			UtilizationRate: rate,
			Classification:  ClassifyUtilization(rate, s.cfg.UnderusedThreshold, s.cfg.OverusedThreshold),
			ComputedAt:      now,
		}
		if err := s.analyticsRepo.UpsertUtilization(ctx, record); err != nil {
			s.logger.Error("Не удалось сохранить загрузку оборудования",
				zap.Uint64("equipmentID", eq.ID), zap.Error(err))
			return count, err
		}
		count++
	}

	s.logger.Info("Загрузка оборудования пересчитана",
		zap.Int("equipmentCount", count),
		zap.Time("windowStart", windowStart),
		zap.Time("windowEnd", windowEnd))
	return count, nil
}

func (s *UsageAnalyzerService) GetUtilization(ctx context.Context, classification string) ([]entities.EquipmentUtilization, error) {
	return s.analyticsRepo.GetUtilization(ctx, classification)
}

func (s *UsageAnalyzerService) GetSummary(ctx context.Context) (*dto.UtilizationSummaryDTO, error) {
	all, err := s.analyticsRepo.GetUtilization(ctx, "")
	if err != nil {
		return nil, err
	}

	summary := &dto.UtilizationSummaryDTO{WindowDays: s.cfg.UtilizationWindowDays}
	if len(all) == 0 {
		return summary, nil
	}

	var sum float64
	for _, u := range all {
		sum += u.UtilizationRate
		switch u.Classification {
		case entities.UtilizationUnderused:
			summary.UnderusedCount++
		case entities.UtilizationOverused:
			summary.OverusedCount++
		}
	}
	summary.AverageRate = sum / float64(len(all))

	byRateDesc := make([]entities.EquipmentUtilization, len(all))
	copy(byRateDesc, all)
	sort.Slice(byRateDesc, func(i, j int) bool {
		return byRateDesc[i].UtilizationRate > byRateDesc[j].UtilizationRate
	})

	top := byRateDesc
	if len(top) > 5 {
		top = top[:5]
	}
	for _, u := range top {
		summary.TopUsed = append(summary.TopUsed, toUtilizationDTO(u))
	}

	least := byRateDesc
	if len(least) > 5 {
		least = least[len(least)-5:]
	}
	for i := len(least) - 1; i >= 0; i-- {
		summary.LeastUsed = append(summary.LeastUsed, toUtilizationDTO(least[i]))
	}
	return summary, nil
}

func toUtilizationDTO(u entities.EquipmentUtilization) dto.EquipmentUtilizationDTO {
	out := dto.EquipmentUtilizationDTO{
		EquipmentID:     u.EquipmentID,
		WindowStart:     u.WindowStart.Format(time.RFC3339),
		WindowEnd:       u.WindowEnd.Format(time.RFC3339),
		BorrowedDays:    u.BorrowedDays,
		UtilizationRate: u.UtilizationRate,
		Classification:  u.Classification,
		ComputedAt:      u.ComputedAt.Format(time.RFC3339),
	}
	if u.Equipment != nil {
		out.EquipmentName = u.Equipment.Name
		out.InventoryNumber = u.Equipment.InventoryNumber
	}
	return out
}
