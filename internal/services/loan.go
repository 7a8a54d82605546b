package services

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
	"lending-system/pkg/utils"
)

type LoanServiceInterface interface {
	GetLoans(ctx context.Context, filter types.Filter) ([]entities.LoanRequest, uint64, error)
	FindLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error)
	CreateLoan(ctx context.Context, payload dto.CreateLoanRequestDTO) (*entities.LoanRequest, error)
	ApproveLoan(ctx context.Context, id uint64, payload dto.LoanDecisionDTO) (*entities.LoanRequest, error)
	RejectLoan(ctx context.Context, id uint64, payload dto.LoanDecisionDTO) (*entities.LoanRequest, error)
	CheckoutLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error)
	ReturnLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error)
	CancelLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error)
}

type LoanService struct {
	txManager       repositories.TxManagerInterface
	loanRepo        repositories.LoanRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	reservationRepo repositories.ReservationRepositoryInterface
	desk            *DeskSchedule
	notifier        NotificationServiceInterface
	reliability     ReliabilityServiceInterface
	logger          *zap.Logger
	now             func() time.Time
}

func NewLoanService(
	txManager repositories.TxManagerInterface,
	loanRepo repositories.LoanRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	reservationRepo repositories.ReservationRepositoryInterface,
	desk *DeskSchedule,
	notifier NotificationServiceInterface,
	reliability ReliabilityServiceInterface,
	logger *zap.Logger,
) LoanServiceInterface {
	return &LoanService{
		txManager:       txManager,
		loanRepo:        loanRepo,
		equipmentRepo:   equipmentRepo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		desk:            desk,
		notifier:        notifier,
		reliability:     reliability,
		logger:          logger,
		now:             time.Now,
	}
}

// actorContext собирает контекст авторизации из значений, положенных middleware.
func (s *LoanService) actorContext(ctx context.Context) (*authz.Context, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return &authz.Context{Actor: actor, Permissions: permissions}, nil
}

func (s *LoanService) GetLoans(ctx context.Context, filter types.Filter) ([]entities.LoanRequest, uint64, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	var security sq.Sqlizer
	switch {
	case authCtx.HasPermission(authz.Superuser) || authCtx.HasPermission(authz.ScopeAll):
		// без ограничений
	case authCtx.HasPermission(authz.ScopeDepartment) && authCtx.Actor.DepartmentID != nil:
		security = sq.Eq{"u.department_id": *authCtx.Actor.DepartmentID}
	default:
		security = sq.Eq{"l.borrower_id": authCtx.Actor.ID}
	}

	return s.loanRepo.GetLoans(ctx, filter, security)
}

func (s *LoanService) FindLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = loan
	if !authz.CanDo(authz.LoansView, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	return loan, nil
}

func (s *LoanService) CreateLoan(ctx context.Context, payload dto.CreateLoanRequestDTO) (*entities.LoanRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(time.RFC3339, payload.StartDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("start_date должен быть в формате RFC3339")
	}
	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("due_date должен быть в формате RFC3339")
	}
	if !dueDate.After(startDate) {
		return nil, apperrors.ErrLoanPeriodInvalid
	}
	if dueDate.Before(s.now()) {
		return nil, apperrors.ErrLoanPeriodInvalid
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.Status != entities.EquipmentStatusAvailable {
		return nil, apperrors.ErrEquipmentNotAvailable
	}

	busy, err := s.loanRepo.HasActiveLoanForEquipment(ctx, eq.ID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, apperrors.ErrEquipmentNotAvailable
	}

	reserved, err := s.reservationRepo.HasOverlap(ctx, eq.ID, startDate, dueDate)
	if err != nil {
		return nil, err
	}
	if reserved {
		return nil, apperrors.ErrReservationOverlap
	}

	loan := entities.LoanRequest{
		EquipmentID: eq.ID,
		BorrowerID:  userID,
		Status:      entities.LoanStatusPending,
		Purpose:     payload.Purpose,
		StartDate:   startDate,
		DueDate:     dueDate,
	}

	id, err := s.loanRepo.CreateLoan(ctx, loan)
	if err != nil {
		s.logger.Error("Ошибка при создании заявки на выдачу", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Заявка на выдачу создана",
		zap.Uint64("loanID", id),
		zap.Uint64("equipmentID", eq.ID),
		zap.Uint64("borrowerID", userID))

	created, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.LoanRequested(ctx, created)
	return created, nil
}

func (s *LoanService) ApproveLoan(ctx context.Context, id uint64, payload dto.LoanDecisionDTO) (*entities.LoanRequest, error) {
	return s.decide(ctx, id, payload, entities.LoanStatusApproved)
}

func (s *LoanService) RejectLoan(ctx context.Context, id uint64, payload dto.LoanDecisionDTO) (*entities.LoanRequest, error) {
	return s.decide(ctx, id, payload, entities.LoanStatusRejected)
}

func (s *LoanService) decide(ctx context.Context, id uint64, payload dto.LoanDecisionDTO, newStatus string) (*entities.LoanRequest, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = loan
	if !authz.CanDo(authz.LoansApprove, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	if loan.Status != entities.LoanStatusPending {
		return nil, apperrors.ErrLoanInvalidTransition
	}
	if newStatus == entities.LoanStatusRejected && payload.Note == "" {
		return nil, apperrors.NewInvalidInputError("при отклонении заявки нужно указать причину")
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.SetDecision(ctx, tx, id, newStatus, authCtx.Actor.ID, payload.Note); err != nil {
			return err
		}
		if newStatus == entities.LoanStatusApproved {
			// Одобрение бронирует единицу до прихода заемщика
			return s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, loan.EquipmentID, entities.EquipmentStatusReserved)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при решении по заявке", zap.Uint64("loanID", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.LoanDecided(ctx, updated)
	return updated, nil
}

func (s *LoanService) CheckoutLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = loan
	if !authz.CanDo(authz.LoansCheckout, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	if loan.Status != entities.LoanStatusApproved {
		return nil, apperrors.ErrLoanInvalidTransition
	}

	now := s.now()
	if !s.desk.IsOpenAt(now) {
		return nil, apperrors.ErrDeskClosed
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkCheckedOut(ctx, tx, id, now); err != nil {
			return err
		}
		return s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, loan.EquipmentID, entities.EquipmentStatusBorrowed)
	})
	if err != nil {
		s.logger.Error("Ошибка при выдаче оборудования", zap.Uint64("loanID", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование выдано", zap.Uint64("loanID", id), zap.Uint64("equipmentID", loan.EquipmentID))
	return s.loanRepo.FindLoan(ctx, id)
}

func (s *LoanService) ReturnLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = loan
	if !authz.CanDo(authz.LoansReturn, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	if loan.Status != entities.LoanStatusBorrowed && loan.Status != entities.LoanStatusOverdue {
		return nil, apperrors.ErrLoanInvalidTransition
	}

	now := s.now()
	if !s.desk.IsOpenAt(now) {
		return nil, apperrors.ErrDeskClosed
	}

	isLate := loan.Status == entities.LoanStatusOverdue || now.After(loan.DueDate)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkReturned(ctx, tx, id, now, isLate); err != nil {
			return err
		}
		return s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, loan.EquipmentID, entities.EquipmentStatusAvailable)
	})
	if err != nil {
		s.logger.Error("Ошибка при приеме оборудования", zap.Uint64("loanID", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование возвращено",
		zap.Uint64("loanID", id),
		zap.Uint64("equipmentID", loan.EquipmentID),
		zap.Bool("isLate", isLate))

	updated, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if isLate {
		s.notifier.LoanReturnedLate(ctx, updated)
	}
	// После возврата история заемщика поменялась — обновляем его рейтинг.
	if _, err := s.reliability.RecalculateUser(ctx, loan.BorrowerID); err != nil {
		s.logger.Warn("Не удалось пересчитать рейтинг заемщика",
			zap.Uint64("userID", loan.BorrowerID), zap.Error(err))
	}
	return updated, nil
}

func (s *LoanService) CancelLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	authCtx, err := s.actorContext(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = loan
	// Заемщик отменяет собственную заявку без loans:update — это его заявка.
	// Всем остальным нужно loans:update с подходящим скоупом.
	isRequester := loan.BorrowerID == authCtx.Actor.ID
	if !isRequester && !authz.CanDo(authz.LoansUpdate, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	if loan.Status != entities.LoanStatusPending && loan.Status != entities.LoanStatusApproved {
		return nil, apperrors.ErrLoanInvalidTransition
	}

	wasApproved := loan.Status == entities.LoanStatusApproved
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkCancelled(ctx, tx, id); err != nil {
			return err
		}
		if wasApproved {
			// Одобренная заявка держала бронь — освобождаем
			return s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, loan.EquipmentID, entities.EquipmentStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при отмене заявки: %w", err)
	}
	return s.loanRepo.FindLoan(ctx, id)
}
