package services

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
	"lending-system/pkg/utils"
)

type ReservationServiceInterface interface {
	GetReservations(ctx context.Context, filter types.Filter) ([]entities.Reservation, uint64, error)
	FindReservation(ctx context.Context, id uint64) (*entities.Reservation, error)
	CreateReservation(ctx context.Context, payload dto.CreateReservationDTO) (*entities.Reservation, error)
	CancelReservation(ctx context.Context, id uint64) error
}

type ReservationService struct {
	reservationRepo repositories.ReservationRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	logger          *zap.Logger
	now             func() time.Time
}

func NewReservationService(
	reservationRepo repositories.ReservationRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ReservationServiceInterface {
	return &ReservationService{
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		userRepo:        userRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *ReservationService) GetReservations(ctx context.Context, filter types.Filter) ([]entities.Reservation, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var security sq.Sqlizer
	if !permissions[authz.Superuser] && !permissions[authz.ScopeAll] {
		security = sq.Eq{"r.user_id": userID}
	}
	return s.reservationRepo.GetReservations(ctx, filter, security)
}

func (s *ReservationService) FindReservation(ctx context.Context, id uint64) (*entities.Reservation, error) {
	res, err := s.reservationRepo.FindReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID && !permissions[authz.Superuser] && !permissions[authz.ScopeAll] {
		return nil, apperrors.ErrForbidden
	}
	return res, nil
}

func (s *ReservationService) CreateReservation(ctx context.Context, payload dto.CreateReservationDTO) (*entities.Reservation, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(time.RFC3339, payload.StartDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("start_date должен быть в формате RFC3339")
	}
	endDate, err := time.Parse(time.RFC3339, payload.EndDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("end_date должен быть в формате RFC3339")
	}
	if !endDate.After(startDate) || endDate.Before(s.now()) {
		return nil, apperrors.ErrLoanPeriodInvalid
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Status == entities.EquipmentStatusRetired || eq.Status == entities.EquipmentStatusMaintenance {
		return nil, apperrors.ErrEquipmentNotAvailable
	}

	overlap, err := s.reservationRepo.HasOverlap(ctx, eq.ID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.ErrReservationOverlap
	}

	res := entities.Reservation{
		EquipmentID: eq.ID,
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      entities.ReservationStatusActive,
		Note:        null.StringFromPtr(payload.Note),
	}

	id, err := s.reservationRepo.CreateReservation(ctx, res)
	if err != nil {
		s.logger.Error("Ошибка при создании брони", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Бронь создана", zap.Uint64("reservationID", id), zap.Uint64("equipmentID", eq.ID))
	return s.reservationRepo.FindReservation(ctx, id)
}

func (s *ReservationService) CancelReservation(ctx context.Context, id uint64) error {
	res, err := s.FindReservation(ctx, id)
	if err != nil {
		return err
	}
	if res.Status != entities.ReservationStatusActive {
		return apperrors.ErrLoanInvalidTransition
	}
	return s.reservationRepo.SetStatus(ctx, id, entities.ReservationStatusCancelled)
}
