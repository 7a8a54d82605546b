package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	"lending-system/internal/repositories"
)

type OverdueSweeperInterface interface {
	Start(ctx context.Context)
	SweepOnce(ctx context.Context) (int, error)
}

// OverdueSweeper — фоновый обходчик: помечает просроченные выдачи,
// фиксирует неявки и поднимает оповещения администраторам.
type OverdueSweeper struct {
	txManager     repositories.TxManagerInterface
	loanRepo      repositories.LoanRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	alertRepo     repositories.AlertRepositoryInterface
	notifier      NotificationServiceInterface
	interval      time.Duration
	noShowGrace   time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewOverdueSweeper(
	txManager repositories.TxManagerInterface,
	loanRepo repositories.LoanRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	alertRepo repositories.AlertRepositoryInterface,
	notifier NotificationServiceInterface,
	interval time.Duration,
	noShowGrace time.Duration,
	logger *zap.Logger,
) OverdueSweeperInterface {
	return &OverdueSweeper{
		txManager:     txManager,
		loanRepo:      loanRepo,
		equipmentRepo: equipmentRepo,
		alertRepo:     alertRepo,
		notifier:      notifier,
		interval:      interval,
		noShowGrace:   noShowGrace,
		logger:        logger,
		now:           time.Now,
	}
}

// Start крутит цикл до отмены контекста. Запускать в отдельной горутине.
func (s *OverdueSweeper) Start(ctx context.Context) {
	s.logger.Info("Обходчик просрочек запущен", zap.Duration("interval", s.interval))

	// Первый проход сразу, не дожидаясь тика
	if _, err := s.SweepOnce(ctx); err != nil {
		s.logger.Error("Ошибка первого прохода обходчика", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Обходчик просрочек остановлен")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("Ошибка прохода обходчика", zap.Error(err))
			}
		}
	}
}

// SweepOnce выполняет один проход и возвращает число обработанных заявок.
func (s *OverdueSweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.now()
	processed := 0

	overdue, err := s.loanRepo.FindOverdueCandidates(ctx, now)
	if err != nil {
		return 0, err
	}
	for i := range overdue {
		loan := &overdue[i]
		if err := s.markOverdue(ctx, loan); err != nil {
			s.logger.Error("Не удалось пометить заявку просроченной",
				zap.Uint64("loanID", loan.ID), zap.Error(err))
			continue
		}
		processed++
		s.notifier.LoanOverdue(ctx, loan)
	}

	// Неявка фиксируется не сразу с начала периода выдачи, а после льготного срока
	noShows, err := s.loanRepo.FindNoShowCandidates(ctx, now.Add(-s.noShowGrace))
	if err != nil {
		return processed, err
	}
	for i := range noShows {
		loan := &noShows[i]
		if err := s.markNoShow(ctx, loan); err != nil {
			s.logger.Error("Не удалось зафиксировать неявку",
				zap.Uint64("loanID", loan.ID), zap.Error(err))
			continue
		}
		processed++
	}

	if processed > 0 {
		s.logger.Info("Проход обходчика завершен",
			zap.Int("processed", processed),
			zap.Int("overdue", len(overdue)),
			zap.Int("noShows", len(noShows)))
	}
	return processed, nil
}

func (s *OverdueSweeper) markOverdue(ctx context.Context, loan *entities.LoanRequest) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkOverdue(ctx, tx, loan.ID); err != nil {
			return err
		}

		exists, err := s.alertRepo.HasAlertForLoan(ctx, loan.ID, entities.AlertTypeLoanOverdue)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		message := fmt.Sprintf("Заявка #%d: оборудование не возвращено к %s",
			loan.ID, loan.DueDate.Format("02.01.2006 15:04"))
		if loan.Equipment != nil {
			message = fmt.Sprintf("Заявка #%d: %s (%s) не возвращено к %s",
				loan.ID, loan.Equipment.Name, loan.Equipment.InventoryNumber,
				loan.DueDate.Format("02.01.2006 15:04"))
		}

		_, err = s.alertRepo.CreateAlert(ctx, tx, entities.AdminAlert{
			Type:          entities.AlertTypeLoanOverdue,
			LoanRequestID: null.Uint64From(loan.ID),
			EquipmentID:   null.Uint64From(loan.EquipmentID),
			Message:       message,
		})
		return err
	})
}

// markNoShow освобождает бронь: заемщик так и не пришел за оборудованием.
func (s *OverdueSweeper) markNoShow(ctx context.Context, loan *entities.LoanRequest) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkNoShow(ctx, tx, loan.ID); err != nil {
			return err
		}
		return s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, loan.EquipmentID, entities.EquipmentStatusAvailable)
	})
}
