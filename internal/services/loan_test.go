package services

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	"lending-system/pkg/contextkeys"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
)

// --- Фейки в памяти ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeLoanRepo struct {
	loans  map[uint64]*entities.LoanRequest
	nextID uint64
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: map[uint64]*entities.LoanRequest{}, nextID: 1}
}

func (r *fakeLoanRepo) add(loan entities.LoanRequest) *entities.LoanRequest {
	if loan.ID == 0 {
		loan.ID = r.nextID
	}
	if loan.ID >= r.nextID {
		r.nextID = loan.ID + 1
	}
	stored := loan
	r.loans[stored.ID] = &stored
	return &stored
}

func (r *fakeLoanRepo) GetLoans(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.LoanRequest, uint64, error) {
	return nil, 0, nil
}

func (r *fakeLoanRepo) FindLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepo) CreateLoan(ctx context.Context, loan entities.LoanRequest) (uint64, error) {
	return r.add(loan).ID, nil
}

func (r *fakeLoanRepo) HasActiveLoanForEquipment(ctx context.Context, equipmentID uint64) (bool, error) {
	for _, loan := range r.loans {
		if loan.EquipmentID == equipmentID && loan.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepo) SetDecision(ctx context.Context, tx pgx.Tx, id uint64, status string, approvedBy uint64, note string) error {
	loan := r.loans[id]
	loan.Status = status
	loan.ApprovedBy.SetValid(approvedBy)
	if note != "" {
		loan.DecisionNote.SetValid(note)
	}
	return nil
}

func (r *fakeLoanRepo) MarkCheckedOut(ctx context.Context, tx pgx.Tx, id uint64, at time.Time) error {
	loan := r.loans[id]
	loan.Status = entities.LoanStatusBorrowed
	loan.CheckedOutAt.SetValid(at)
	return nil
}

func (r *fakeLoanRepo) MarkReturned(ctx context.Context, tx pgx.Tx, id uint64, at time.Time, isLate bool) error {
	loan := r.loans[id]
	loan.Status = entities.LoanStatusReturned
	loan.ReturnedAt.SetValid(at)
	loan.IsLate = isLate
	return nil
}

func (r *fakeLoanRepo) MarkCancelled(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.loans[id].Status = entities.LoanStatusCancelled
	return nil
}

func (r *fakeLoanRepo) MarkOverdue(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.loans[id].Status = entities.LoanStatusOverdue
	return nil
}

func (r *fakeLoanRepo) MarkNoShow(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.loans[id].Status = entities.LoanStatusNoShow
	return nil
}

func (r *fakeLoanRepo) FindOverdueCandidates(ctx context.Context, now time.Time) ([]entities.LoanRequest, error) {
	var out []entities.LoanRequest
	for _, loan := range r.loans {
		if loan.Status == entities.LoanStatusBorrowed && loan.DueDate.Before(now) {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]entities.LoanRequest, error) {
	var out []entities.LoanRequest
	for _, loan := range r.loans {
		if loan.Status == entities.LoanStatusApproved && loan.StartDate.Before(cutoff) {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) GetLoansTouchingWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]entities.LoanRequest, error) {
	return nil, nil
}

func (r *fakeLoanRepo) GetReliabilityCounts(ctx context.Context, userID uint64) (*repositories.ReliabilityCounts, error) {
	return &repositories.ReliabilityCounts{}, nil
}

func (r *fakeLoanRepo) GetBorrowerIDs(ctx context.Context) ([]uint64, error) { return nil, nil }

type fakeEquipmentRepo struct {
	items map[uint64]*entities.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[uint64]*entities.Equipment{}}
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return nil, 0, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	eq, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return eq, nil
}

func (r *fakeEquipmentRepo) FindByInventoryNumber(ctx context.Context, inventoryNumber string) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	return 0, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, eq entities.Equipment) error {
	return nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	eq, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	eq.Status = status
	return nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentImages(ctx context.Context, id uint64, imagePath, thumbnailPath string) error {
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error) {
	return 0, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user entities.User) error { return nil }

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error { return nil }

type fakeReservationRepo struct {
	overlap bool
}

func (r *fakeReservationRepo) GetReservations(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.Reservation, uint64, error) {
	return nil, 0, nil
}

func (r *fakeReservationRepo) FindReservation(ctx context.Context, id uint64) (*entities.Reservation, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeReservationRepo) CreateReservation(ctx context.Context, res entities.Reservation) (uint64, error) {
	return 0, nil
}

func (r *fakeReservationRepo) HasOverlap(ctx context.Context, equipmentID uint64, start, end time.Time) (bool, error) {
	return r.overlap, nil
}

func (r *fakeReservationRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	return nil
}

type fakeNotifier struct {
	requested int
	decided   int
	overdue   int
	late      int
}

func (n *fakeNotifier) LoanRequested(ctx context.Context, loan *entities.LoanRequest) { n.requested++ }
func (n *fakeNotifier) LoanDecided(ctx context.Context, loan *entities.LoanRequest)   { n.decided++ }
func (n *fakeNotifier) LoanOverdue(ctx context.Context, loan *entities.LoanRequest)   { n.overdue++ }
func (n *fakeNotifier) LoanReturnedLate(ctx context.Context, loan *entities.LoanRequest) {
	n.late++
}

type fakeReliability struct {
	recalculated []uint64
}

func (f *fakeReliability) RecalculateAll(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeReliability) RecalculateUser(ctx context.Context, userID uint64) (*entities.UserReliability, error) {
	f.recalculated = append(f.recalculated, userID)
	return &entities.UserReliability{UserID: userID}, nil
}

func (f *fakeReliability) GetReliability(ctx context.Context, userID uint64) (*dto.UserReliabilityDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeReliability) GetReliabilityList(ctx context.Context, grade string) ([]dto.UserReliabilityDTO, error) {
	return nil, nil
}

// --- Фикстура ---

type loanFixture struct {
	svc         *LoanService
	loans       *fakeLoanRepo
	equipment   *fakeEquipmentRepo
	users       *fakeUserRepo
	reservation *fakeReservationRepo
	notifier    *fakeNotifier
	reliability *fakeReliability
}

func permsMap(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func ctxAs(userID uint64, perms ...string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.PermissionsMapKey, permsMap(perms...))
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()
	desk, err := NewDeskSchedule(testLendingConfig())
	require.NoError(t, err)

	dept := uint64(10)
	otherDept := uint64(20)
	f := &loanFixture{
		loans:     newFakeLoanRepo(),
		equipment: newFakeEquipmentRepo(),
		users: &fakeUserRepo{users: map[uint64]*entities.User{
			1: {ID: 1, Fio: "Студентов С.С.", DepartmentID: &dept},
			2: {ID: 2, Fio: "Кладовщиков К.К."},
			3: {ID: 3, Fio: "Преподавателев П.П.", DepartmentID: &dept},
			4: {ID: 4, Fio: "Чужаков Ч.Ч.", DepartmentID: &otherDept},
		}},
		reservation: &fakeReservationRepo{},
		notifier:    &fakeNotifier{},
		reliability: &fakeReliability{},
	}
	f.equipment.items[100] = &entities.Equipment{ID: 100, Name: "Ноутбук", Status: entities.EquipmentStatusAvailable}

	f.svc = &LoanService{
		txManager:       fakeTxManager{},
		loanRepo:        f.loans,
		equipmentRepo:   f.equipment,
		userRepo:        f.users,
		reservationRepo: f.reservation,
		desk:            desk,
		notifier:        f.notifier,
		reliability:     f.reliability,
		logger:          zap.NewNop(),
		now:             func() time.Time { return at(10, 0) },
	}
	return f
}

func (f *loanFixture) seedLoan(status string, borrowerID uint64) *entities.LoanRequest {
	borrower := f.users.users[borrowerID]
	return f.loans.add(entities.LoanRequest{
		EquipmentID: 100,
		BorrowerID:  borrowerID,
		Status:      status,
		StartDate:   at(9, 0),
		DueDate:     at(16, 0).AddDate(0, 0, 7),
		Borrower:    borrower,
	})
}

// --- Создание заявки ---

func TestLoanService_CreateLoan(t *testing.T) {
	studentCtx := ctxAs(1, authz.LoansCreate, authz.ScopeOwn)
	start := at(9, 0).Format(time.RFC3339)
	due := at(16, 0).AddDate(0, 0, 7).Format(time.RFC3339)

	t.Run("успешное создание", func(t *testing.T) {
		f := newLoanFixture(t)
		loan, err := f.svc.CreateLoan(studentCtx, dto.CreateLoanRequestDTO{
			EquipmentID: 100, Purpose: "лабораторная", StartDate: start, DueDate: due,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusPending, loan.Status)
		assert.Equal(t, uint64(1), loan.BorrowerID)
		assert.Equal(t, 1, f.notifier.requested)
	})

	t.Run("срок возврата раньше начала", func(t *testing.T) {
		f := newLoanFixture(t)
		_, err := f.svc.CreateLoan(studentCtx, dto.CreateLoanRequestDTO{
			EquipmentID: 100, Purpose: "x", StartDate: due, DueDate: start,
		})
		assert.ErrorIs(t, err, apperrors.ErrLoanPeriodInvalid)
	})

	t.Run("оборудование не в статусе available", func(t *testing.T) {
		f := newLoanFixture(t)
		f.equipment.items[100].Status = entities.EquipmentStatusMaintenance
		_, err := f.svc.CreateLoan(studentCtx, dto.CreateLoanRequestDTO{
			EquipmentID: 100, Purpose: "x", StartDate: start, DueDate: due,
		})
		assert.ErrorIs(t, err, apperrors.ErrEquipmentNotAvailable)
	})

	t.Run("активная заявка держит оборудование", func(t *testing.T) {
		f := newLoanFixture(t)
		f.seedLoan(entities.LoanStatusPending, 4)
		_, err := f.svc.CreateLoan(studentCtx, dto.CreateLoanRequestDTO{
			EquipmentID: 100, Purpose: "x", StartDate: start, DueDate: due,
		})
		assert.ErrorIs(t, err, apperrors.ErrEquipmentNotAvailable)
	})

	t.Run("пересечение с бронью", func(t *testing.T) {
		f := newLoanFixture(t)
		f.reservation.overlap = true
		_, err := f.svc.CreateLoan(studentCtx, dto.CreateLoanRequestDTO{
			EquipmentID: 100, Purpose: "x", StartDate: start, DueDate: due,
		})
		assert.ErrorIs(t, err, apperrors.ErrReservationOverlap)
	})
}

// --- Решение по заявке ---

func TestLoanService_ApproveReject(t *testing.T) {
	keeperCtx := ctxAs(2, authz.LoansApprove, authz.ScopeAll)

	t.Run("одобрение бронирует оборудование", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)

		updated, err := f.svc.ApproveLoan(keeperCtx, loan.ID, dto.LoanDecisionDTO{})
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusApproved, updated.Status)
		assert.Equal(t, entities.EquipmentStatusReserved, f.equipment.items[100].Status)
		assert.Equal(t, 1, f.notifier.decided)
	})

	t.Run("отклонение требует причину", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)

		_, err := f.svc.RejectLoan(keeperCtx, loan.ID, dto.LoanDecisionDTO{})
		assert.Error(t, err)

		updated, err := f.svc.RejectLoan(keeperCtx, loan.ID, dto.LoanDecisionDTO{Note: "нет в наличии"})
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusRejected, updated.Status)
		// Отклонение не резервирует оборудование
		assert.Equal(t, entities.EquipmentStatusAvailable, f.equipment.items[100].Status)
	})

	t.Run("решение возможно только по pending", func(t *testing.T) {
		f := newLoanFixture(t)
		for _, status := range []string{
			entities.LoanStatusApproved, entities.LoanStatusBorrowed,
			entities.LoanStatusReturned, entities.LoanStatusCancelled,
		} {
			loan := f.seedLoan(status, 1)
			_, err := f.svc.ApproveLoan(keeperCtx, loan.ID, dto.LoanDecisionDTO{})
			assert.ErrorIs(t, err, apperrors.ErrLoanInvalidTransition, status)
		}
	})

	t.Run("студент не может одобрить свою заявку", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)
		_, err := f.svc.ApproveLoan(ctxAs(1, authz.LoansCreate, authz.ScopeOwn), loan.ID, dto.LoanDecisionDTO{})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

// --- Выдача ---

func TestLoanService_Checkout(t *testing.T) {
	keeperCtx := ctxAs(2, authz.LoansCheckout, authz.ScopeAll)

	t.Run("выдача одобренной заявки", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusApproved, 1)

		updated, err := f.svc.CheckoutLoan(keeperCtx, loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusBorrowed, updated.Status)
		assert.True(t, updated.CheckedOutAt.Valid)
		assert.Equal(t, entities.EquipmentStatusBorrowed, f.equipment.items[100].Status)
	})

	t.Run("во время обеда пункт выдачи закрыт", func(t *testing.T) {
		f := newLoanFixture(t)
		f.svc.now = func() time.Time { return at(12, 30) }
		loan := f.seedLoan(entities.LoanStatusApproved, 1)

		_, err := f.svc.CheckoutLoan(keeperCtx, loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrDeskClosed)
	})

	t.Run("выдать можно только одобренную", func(t *testing.T) {
		f := newLoanFixture(t)
		for _, status := range []string{
			entities.LoanStatusPending, entities.LoanStatusBorrowed, entities.LoanStatusReturned,
		} {
			loan := f.seedLoan(status, 1)
			_, err := f.svc.CheckoutLoan(keeperCtx, loan.ID)
			assert.ErrorIs(t, err, apperrors.ErrLoanInvalidTransition, status)
		}
	})
}

// --- Возврат ---

func TestLoanService_Return(t *testing.T) {
	keeperCtx := ctxAs(2, authz.LoansReturn, authz.ScopeAll)

	t.Run("возврат в срок", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusBorrowed, 1)

		updated, err := f.svc.ReturnLoan(keeperCtx, loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusReturned, updated.Status)
		assert.False(t, updated.IsLate)
		assert.Equal(t, entities.EquipmentStatusAvailable, f.equipment.items[100].Status)
		// Возврат пересчитывает рейтинг заемщика
		assert.Equal(t, []uint64{1}, f.reliability.recalculated)
		assert.Zero(t, f.notifier.late)
	})

	t.Run("возврат после срока помечается опозданием", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusBorrowed, 1)
		loan.DueDate = at(9, 0).AddDate(0, 0, -1)

		updated, err := f.svc.ReturnLoan(keeperCtx, loan.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsLate)
		assert.Equal(t, 1, f.notifier.late)
	})

	t.Run("просроченную тоже можно вернуть", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusOverdue, 1)

		updated, err := f.svc.ReturnLoan(keeperCtx, loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusReturned, updated.Status)
		assert.True(t, updated.IsLate)
	})

	t.Run("во время обеда возврат не принимается", func(t *testing.T) {
		f := newLoanFixture(t)
		f.svc.now = func() time.Time { return at(12, 15) }
		loan := f.seedLoan(entities.LoanStatusBorrowed, 1)

		_, err := f.svc.ReturnLoan(keeperCtx, loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrDeskClosed)
	})

	t.Run("вернуть можно только выданную", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)
		_, err := f.svc.ReturnLoan(keeperCtx, loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrLoanInvalidTransition)
	})
}

// --- Отмена ---

func TestLoanService_Cancel(t *testing.T) {
	t.Run("студент отменяет свою pending-заявку", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)

		// Ровно набор прав посевной роли Студент: loans:update у него нет
		updated, err := f.svc.CancelLoan(ctxAs(1, authz.LoansCreate, authz.LoansView, authz.ScopeOwn), loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusCancelled, updated.Status)
	})

	t.Run("чужую заявку без loans:update отменить нельзя", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 4)

		_, err := f.svc.CancelLoan(ctxAs(1, authz.LoansCreate, authz.LoansView, authz.ScopeOwn), loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("преподаватель отменяет заявку студента своей кафедры", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 1)

		updated, err := f.svc.CancelLoan(ctxAs(3, authz.LoansUpdate, authz.ScopeDepartment), loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.LoanStatusCancelled, updated.Status)
	})

	t.Run("заявку с другой кафедры преподаватель не отменит", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusPending, 4)

		_, err := f.svc.CancelLoan(ctxAs(3, authz.LoansUpdate, authz.ScopeDepartment), loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("отмена одобренной освобождает бронь", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusApproved, 1)
		f.equipment.items[100].Status = entities.EquipmentStatusReserved

		_, err := f.svc.CancelLoan(ctxAs(1, authz.LoansCreate, authz.ScopeOwn), loan.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EquipmentStatusAvailable, f.equipment.items[100].Status)
	})

	t.Run("выданную заявку отменить нельзя", func(t *testing.T) {
		f := newLoanFixture(t)
		loan := f.seedLoan(entities.LoanStatusBorrowed, 1)

		_, err := f.svc.CancelLoan(ctxAs(1, authz.LoansCreate, authz.ScopeOwn), loan.ID)
		assert.ErrorIs(t, err, apperrors.ErrLoanInvalidTransition)
	})
}
