package services

import (
	"context"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/repositories"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{dashboardRepo: dashboardRepo, logger: logger}
}

func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	loansByStatus, err := s.dashboardRepo.CountLoansByStatus(ctx)
	if err != nil {
		s.logger.Error("Ошибка при подсчете заявок по статусам", zap.Error(err))
		return nil, err
	}

	overdueCount, err := s.dashboardRepo.CountOverdue(ctx)
	if err != nil {
		return nil, err
	}

	pendingCount, err := s.dashboardRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	checkouts, err := s.dashboardRepo.CheckoutsByDay(ctx, 7)
	if err != nil {
		return nil, err
	}

	topEquipment, err := s.dashboardRepo.TopEquipment(ctx, 10)
	if err != nil {
		return nil, err
	}

	avgUtilization, err := s.dashboardRepo.AvgUtilization(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		LoansByStatus:   loansByStatus,
		OverdueCount:    overdueCount,
		PendingRequests: pendingCount,
		CheckoutsWeekly: checkouts,
		TopEquipment:    topEquipment,
		AvgUtilization:  avgUtilization,
	}, nil
}
