package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/repositories"
	"lending-system/pkg/utils"
)

type AlertServiceInterface interface {
	GetAlerts(ctx context.Context, onlyUnacknowledged bool) ([]dto.AdminAlertDTO, error)
	Acknowledge(ctx context.Context, id uint64) error
}

type AlertService struct {
	alertRepo repositories.AlertRepositoryInterface
	logger    *zap.Logger
}

func NewAlertService(alertRepo repositories.AlertRepositoryInterface, logger *zap.Logger) AlertServiceInterface {
	return &AlertService{alertRepo: alertRepo, logger: logger}
}

func (s *AlertService) GetAlerts(ctx context.Context, onlyUnacknowledged bool) ([]dto.AdminAlertDTO, error) {
	alerts, err := s.alertRepo.GetAlerts(ctx, onlyUnacknowledged)
	if err != nil {
		return nil, err
	}

	list := make([]dto.AdminAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		item := dto.AdminAlertDTO{
			ID:             a.ID,
			Type:           a.Type,
			Message:        a.Message,
			IsAcknowledged: a.IsAcknowledged,
			CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		}
		if a.LoanRequestID.Valid {
			item.LoanRequestID = &a.LoanRequestID.Uint64
		}
		if a.EquipmentID.Valid {
			item.EquipmentID = &a.EquipmentID.Uint64
		}
		if a.AcknowledgedBy.Valid {
			item.AcknowledgedBy = &a.AcknowledgedBy.Uint64
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *AlertService) Acknowledge(ctx context.Context, id uint64) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.alertRepo.Acknowledge(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("Оповещение подтверждено", zap.Uint64("alertID", id), zap.Uint64("userID", userID))
	return nil
}
