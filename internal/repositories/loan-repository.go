package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	db "lending-system/internal/infrastructure/bd"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
)

const loanFields = `l.id, l.equipment_id, l.borrower_id, l.status, l.purpose, l.start_date, l.due_date,
	l.approved_by, l.decision_note, l.checked_out_at, l.returned_at, l.is_late, l.created_at, l.updated_at,
	e.inventory_number, e.name, u.fio, u.email, u.department_id`

var loanAllowedFields = map[string]string{
	"status":       "l.status",
	"equipment_id": "l.equipment_id",
	"borrower_id":  "l.borrower_id",
	"created_at":   "l.created_at",
	"due_date":     "l.due_date",
}

// ReliabilityCounts — сырье для расчета рейтинга надежности.
type ReliabilityCounts struct {
	TotalFinished int
	OnTimeReturns int
	LateReturns   int
	NoShows       int
	ApprovedTotal int
}

type LoanRepositoryInterface interface {
	GetLoans(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.LoanRequest, uint64, error)
	FindLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error)
	CreateLoan(ctx context.Context, loan entities.LoanRequest) (uint64, error)
	HasActiveLoanForEquipment(ctx context.Context, equipmentID uint64) (bool, error)
	SetDecision(ctx context.Context, tx pgx.Tx, id uint64, status string, approvedBy uint64, note string) error
	MarkCheckedOut(ctx context.Context, tx pgx.Tx, id uint64, at time.Time) error
	MarkReturned(ctx context.Context, tx pgx.Tx, id uint64, at time.Time, isLate bool) error
	MarkCancelled(ctx context.Context, tx pgx.Tx, id uint64) error
	MarkOverdue(ctx context.Context, tx pgx.Tx, id uint64) error
	MarkNoShow(ctx context.Context, tx pgx.Tx, id uint64) error
	FindOverdueCandidates(ctx context.Context, now time.Time) ([]entities.LoanRequest, error)
	FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]entities.LoanRequest, error)
	GetLoansTouchingWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]entities.LoanRequest, error)
	GetReliabilityCounts(ctx context.Context, userID uint64) (*ReliabilityCounts, error)
	GetBorrowerIDs(ctx context.Context) ([]uint64, error)
}

type LoanRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLoanRepository(storage *pgxpool.Pool, logger *zap.Logger) LoanRepositoryInterface {
	return &LoanRepository{storage: storage, logger: logger}
}

func (r *LoanRepository) baseSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("loan_requests l").
		LeftJoin("equipments e ON l.equipment_id = e.id").
		LeftJoin("users u ON l.borrower_id = u.id")
}

func scanLoan(row pgx.Row) (*entities.LoanRequest, error) {
	var l entities.LoanRequest
	var invNumber, eqName *string
	var fio, email *string
	var departmentID *uint64

	err := row.Scan(
		&l.ID,
		&l.EquipmentID,
		&l.BorrowerID,
		&l.Status,
		&l.Purpose,
		&l.StartDate,
		&l.DueDate,
		&l.ApprovedBy,
		&l.DecisionNote,
		&l.CheckedOutAt,
		&l.ReturnedAt,
		&l.IsLate,
		&l.CreatedAt,
		&l.UpdatedAt,
		&invNumber,
		&eqName,
		&fio,
		&email,
		&departmentID,
	)
	if err != nil {
		return nil, err
	}

	if eqName != nil {
		l.Equipment = &entities.Equipment{ID: l.EquipmentID, Name: *eqName}
		if invNumber != nil {
			l.Equipment.InventoryNumber = *invNumber
		}
	}
	if fio != nil {
		l.Borrower = &entities.User{ID: l.BorrowerID, Fio: *fio, DepartmentID: departmentID}
		if email != nil {
			l.Borrower.Email = *email
		}
	}
	return &l, nil
}

// GetLoans — список с фильтрами. security добавляется сервисом по скоупам актора.
func (r *LoanRepository) GetLoans(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.LoanRequest, uint64, error) {
	base := r.baseSelect()
	if security != nil {
		base = base.Where(security)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.inventory_number": pattern},
			sq.ILike{"u.fio": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(l.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.LoanRequest{}, 0, nil
	}

	listBuilder := db.ApplyListParams(base.Columns(loanFields), filter, loanAllowedFields)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("l.id DESC")
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.LoanRequest
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *l)
	}
	return list, total, rows.Err()
}

func (r *LoanRepository) FindLoan(ctx context.Context, id uint64) (*entities.LoanRequest, error) {
	query, args, err := r.baseSelect().Columns(loanFields).Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	l, err := scanLoan(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, loan entities.LoanRequest) (uint64, error) {
	query := `
        INSERT INTO loan_requests (equipment_id, borrower_id, status, purpose, start_date, due_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		loan.EquipmentID,
		loan.BorrowerID,
		loan.Status,
		loan.Purpose,
		loan.StartDate,
		loan.DueDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// HasActiveLoanForEquipment проверяет, не держит ли оборудование другая живая заявка.
func (r *LoanRepository) HasActiveLoanForEquipment(ctx context.Context, equipmentID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM loan_requests
            WHERE equipment_id = $1 AND status IN ('pending', 'approved', 'borrowed', 'overdue')
        )
    `, equipmentID).Scan(&exists)
	return exists, err
}

func (r *LoanRepository) SetDecision(ctx context.Context, tx pgx.Tx, id uint64, status string, approvedBy uint64, note string) error {
	result, err := tx.Exec(ctx, `
        UPDATE loan_requests
        SET status = $1, approved_by = $2, decision_note = NULLIF($3, ''), updated_at = CURRENT_TIMESTAMP
        WHERE id = $4
    `, status, approvedBy, note, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) MarkCheckedOut(ctx context.Context, tx pgx.Tx, id uint64, at time.Time) error {
	result, err := tx.Exec(ctx, `
        UPDATE loan_requests
        SET status = 'borrowed', checked_out_at = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2
    `, at, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, tx pgx.Tx, id uint64, at time.Time, isLate bool) error {
	result, err := tx.Exec(ctx, `
        UPDATE loan_requests
        SET status = 'returned', returned_at = $1, is_late = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `, at, isLate, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) MarkCancelled(ctx context.Context, tx pgx.Tx, id uint64) error {
	return r.setStatus(ctx, tx, id, entities.LoanStatusCancelled)
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, tx pgx.Tx, id uint64) error {
	return r.setStatus(ctx, tx, id, entities.LoanStatusOverdue)
}

func (r *LoanRepository) MarkNoShow(ctx context.Context, tx pgx.Tx, id uint64) error {
	return r.setStatus(ctx, tx, id, entities.LoanStatusNoShow)
}

func (r *LoanRepository) setStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}
	result, err := q.Exec(ctx,
		`UPDATE loan_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOverdueCandidates — выданные заявки с прошедшим сроком возврата.
func (r *LoanRepository) FindOverdueCandidates(ctx context.Context, now time.Time) ([]entities.LoanRequest, error) {
	query, args, err := r.baseSelect().Columns(loanFields).
		Where(sq.Eq{"l.status": entities.LoanStatusBorrowed}).
		Where(sq.Lt{"l.due_date": now}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryLoans(ctx, query, args)
}

// FindNoShowCandidates — одобренные заявки, за которыми так и не пришли.
// cutoff — начало периода выдачи минус льготный срок: до его истечения
// бронь не снимаем, заемщик еще может прийти.
func (r *LoanRepository) FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]entities.LoanRequest, error) {
	query, args, err := r.baseSelect().Columns(loanFields).
		Where(sq.Eq{"l.status": entities.LoanStatusApproved}).
		Where(sq.Lt{"l.start_date": cutoff}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryLoans(ctx, query, args)
}

// GetLoansTouchingWindow — заявки с выдачей, чей интервал пересекает окно анализа.
func (r *LoanRepository) GetLoansTouchingWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]entities.LoanRequest, error) {
	query, args, err := r.baseSelect().Columns(loanFields).
		Where(sq.NotEq{"l.checked_out_at": nil}).
		Where(sq.Lt{"l.checked_out_at": windowEnd}).
		Where(sq.Or{
			sq.Eq{"l.returned_at": nil},
			sq.Gt{"l.returned_at": windowStart},
		}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryLoans(ctx, query, args)
}

func (r *LoanRepository) queryLoans(ctx context.Context, query string, args []interface{}) ([]entities.LoanRequest, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.LoanRequest
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

func (r *LoanRepository) GetReliabilityCounts(ctx context.Context, userID uint64) (*ReliabilityCounts, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE status IN ('returned', 'overdue')),
            COUNT(*) FILTER (WHERE status = 'returned' AND is_late = FALSE),
            COUNT(*) FILTER (WHERE status = 'overdue' OR (status = 'returned' AND is_late = TRUE)),
            COUNT(*) FILTER (WHERE status = 'no_show'),
            COUNT(*) FILTER (WHERE status IN ('approved', 'borrowed', 'returned', 'overdue', 'no_show'))
        FROM loan_requests
        WHERE borrower_id = $1
    `
	var c ReliabilityCounts
	err := r.storage.QueryRow(ctx, query, userID).Scan(
		&c.TotalFinished,
		&c.OnTimeReturns,
		&c.LateReturns,
		&c.NoShows,
		&c.ApprovedTotal,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBorrowerIDs — все пользователи, у которых была хотя бы одна заявка.
func (r *LoanRepository) GetBorrowerIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.storage.Query(ctx, `SELECT DISTINCT borrower_id FROM loan_requests`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
