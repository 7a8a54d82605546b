package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/entities"
)

type ReportRepositoryInterface interface {
	GetLoanReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

func (r *ReportRepository) GetLoanReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(`l.id, u.fio, u.email, e.name, e.inventory_number, c.name,
			l.status, l.start_date, l.due_date, l.checked_out_at, l.returned_at, l.is_late`).
		From("loan_requests l").
		Join("users u ON l.borrower_id = u.id").
		Join("equipments e ON l.equipment_id = e.id").
		LeftJoin("equipment_categories c ON e.category_id = c.id").
		OrderBy("l.created_at DESC")

	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"l.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"l.created_at": *filter.DateTo})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"l.status": filter.Status})
	}
	if filter.CategoryID != nil {
		builder = builder.Where(sq.Eq{"e.category_id": *filter.CategoryID})
	}
	if filter.BorrowerID != nil {
		builder = builder.Where(sq.Eq{"l.borrower_id": *filter.BorrowerID})
	}
	if filter.OnlyOverdue {
		builder = builder.Where(sq.Eq{"l.status": entities.LoanStatusOverdue})
	}

	// Срез по скоупам актора: без scope:all видим только свой отдел или себя.
	if filter.Actor != nil && !filter.PermissionsMap[authz.ScopeAll] && !filter.PermissionsMap[authz.Superuser] {
		if filter.PermissionsMap[authz.ScopeDepartment] && filter.Actor.DepartmentID != nil {
			builder = builder.Where(sq.Eq{"u.department_id": *filter.Actor.DepartmentID})
		} else {
			builder = builder.Where(sq.Eq{"l.borrower_id": filter.Actor.ID})
		}
	}

	if filter.PerPage > 0 {
		builder = builder.Limit(uint64(filter.PerPage))
		if filter.Page > 1 {
			builder = builder.Offset(uint64((filter.Page - 1) * filter.PerPage))
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.ReportItem
	for rows.Next() {
		var it entities.ReportItem
		err = rows.Scan(
			&it.LoanID, &it.BorrowerFio, &it.BorrowerEmail, &it.EquipmentName, &it.InventoryNumber,
			&it.CategoryName, &it.Status, &it.StartDate, &it.DueDate,
			&it.CheckedOutAt, &it.ReturnedAt, &it.IsLate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
