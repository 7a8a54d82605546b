package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lending-system/internal/entities"
)

type fakeAlertRepo struct {
	alerts []entities.AdminAlert
}

func (r *fakeAlertRepo) CreateAlert(ctx context.Context, tx pgx.Tx, alert entities.AdminAlert) (uint64, error) {
	r.alerts = append(r.alerts, alert)
	return uint64(len(r.alerts)), nil
}

func (r *fakeAlertRepo) GetAlerts(ctx context.Context, onlyUnacknowledged bool) ([]entities.AdminAlert, error) {
	return r.alerts, nil
}

func (r *fakeAlertRepo) Acknowledge(ctx context.Context, id uint64, userID uint64) error {
	return nil
}

func (r *fakeAlertRepo) HasAlertForLoan(ctx context.Context, loanID uint64, alertType string) (bool, error) {
	for _, a := range r.alerts {
		if a.LoanRequestID.Valid && a.LoanRequestID.Uint64 == loanID && a.Type == alertType {
			return true, nil
		}
	}
	return false, nil
}

type sweeperFixture struct {
	sweeper   *OverdueSweeper
	loans     *fakeLoanRepo
	equipment *fakeEquipmentRepo
	alerts    *fakeAlertRepo
	notifier  *fakeNotifier
}

func newSweeperFixture(t *testing.T, now time.Time) *sweeperFixture {
	t.Helper()
	f := &sweeperFixture{
		loans:     newFakeLoanRepo(),
		equipment: newFakeEquipmentRepo(),
		alerts:    &fakeAlertRepo{},
		notifier:  &fakeNotifier{},
	}
	f.equipment.items[100] = &entities.Equipment{ID: 100, Name: "Проектор", Status: entities.EquipmentStatusReserved}
	f.sweeper = &OverdueSweeper{
		txManager:     fakeTxManager{},
		loanRepo:      f.loans,
		equipmentRepo: f.equipment,
		alertRepo:     f.alerts,
		notifier:      f.notifier,
		interval:      time.Minute,
		noShowGrace:   24 * time.Hour,
		logger:        zap.NewNop(),
		now:           func() time.Time { return now },
	}
	return f
}

func TestOverdueSweeper_MarksOverdue(t *testing.T) {
	now := at(10, 0)
	f := newSweeperFixture(t, now)
	loan := f.loans.add(entities.LoanRequest{
		EquipmentID: 100,
		BorrowerID:  1,
		Status:      entities.LoanStatusBorrowed,
		StartDate:   now.AddDate(0, 0, -10),
		DueDate:     now.AddDate(0, 0, -1),
	})

	processed, err := f.sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, entities.LoanStatusOverdue, f.loans.loans[loan.ID].Status)
	assert.Equal(t, 1, f.notifier.overdue)
	require.Len(t, f.alerts.alerts, 1)
	assert.Equal(t, entities.AlertTypeLoanOverdue, f.alerts.alerts[0].Type)

	// Повторный проход не плодит дубликатов
	processed, err = f.sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Len(t, f.alerts.alerts, 1)
}

func TestOverdueSweeper_NoShowAfterGrace(t *testing.T) {
	now := at(10, 0)
	f := newSweeperFixture(t, now)
	missed := f.loans.add(entities.LoanRequest{
		EquipmentID: 100,
		BorrowerID:  1,
		Status:      entities.LoanStatusApproved,
		StartDate:   now.AddDate(0, 0, -2),
		DueDate:     now.AddDate(0, 0, 5),
	})

	processed, err := f.sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, entities.LoanStatusNoShow, f.loans.loans[missed.ID].Status)
	// Бронь снимается, оборудование снова доступно
	assert.Equal(t, entities.EquipmentStatusAvailable, f.equipment.items[100].Status)
}

func TestOverdueSweeper_GracePeriodHoldsReservation(t *testing.T) {
	now := at(10, 0)
	f := newSweeperFixture(t, now)
	fresh := f.loans.add(entities.LoanRequest{
		EquipmentID: 100,
		BorrowerID:  1,
		Status:      entities.LoanStatusApproved,
		StartDate:   now.Add(-2 * time.Hour),
		DueDate:     now.AddDate(0, 0, 5),
	})

	processed, err := f.sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Equal(t, entities.LoanStatusApproved, f.loans.loans[fresh.ID].Status)
	assert.Equal(t, entities.EquipmentStatusReserved, f.equipment.items[100].Status)
}
