package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/dto"
)

type DashboardRepositoryInterface interface {
	CountLoansByStatus(ctx context.Context) ([]dto.DashboardCountByGroup, error)
	CountOverdue(ctx context.Context) (uint64, error)
	CountPending(ctx context.Context) (uint64, error)
	CheckoutsByDay(ctx context.Context, days int) ([]dto.DashboardChartPoint, error)
	TopEquipment(ctx context.Context, limit int) ([]dto.DashboardCountByGroup, error)
	AvgUtilization(ctx context.Context) (float64, error)
	PublicCounters(ctx context.Context) (*dto.PublicStatsDTO, error)
	TopCategories(ctx context.Context, limit int) ([]dto.DashboardCountByGroup, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) CountLoansByStatus(ctx context.Context) ([]dto.DashboardCountByGroup, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT status, COUNT(*) FROM loan_requests GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCountGroups(rows)
}

func (r *DashboardRepository) CountOverdue(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM loan_requests WHERE status = 'overdue'`).Scan(&count)
	return count, err
}

func (r *DashboardRepository) CountPending(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM loan_requests WHERE status = 'pending'`).Scan(&count)
	return count, err
}

// CheckoutsByDay — точки для графика выдач за последние N дней.
func (r *DashboardRepository) CheckoutsByDay(ctx context.Context, days int) ([]dto.DashboardChartPoint, error) {
	rows, err := r.storage.Query(ctx, `
        SELECT TO_CHAR(checked_out_at::date, 'YYYY-MM-DD') AS day, COUNT(*)
        FROM loan_requests
        WHERE checked_out_at >= CURRENT_DATE - $1::int
        GROUP BY day
        ORDER BY day
    `, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []dto.DashboardChartPoint
	for rows.Next() {
		var p dto.DashboardChartPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *DashboardRepository) TopEquipment(ctx context.Context, limit int) ([]dto.DashboardCountByGroup, error) {
	rows, err := r.storage.Query(ctx, `
        SELECT e.name, COUNT(l.id) AS cnt
        FROM loan_requests l
        JOIN equipments e ON l.equipment_id = e.id
        WHERE l.checked_out_at IS NOT NULL
        GROUP BY e.name
        ORDER BY cnt DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCountGroups(rows)
}

func (r *DashboardRepository) AvgUtilization(ctx context.Context) (float64, error) {
	var avg float64
	err := r.storage.QueryRow(ctx,
		`SELECT COALESCE(AVG(utilization_rate), 0) FROM equipment_utilization`).Scan(&avg)
	return avg, err
}

// PublicCounters — агрегаты для публичной страницы, без привязки к пользователям.
func (r *DashboardRepository) PublicCounters(ctx context.Context) (*dto.PublicStatsDTO, error) {
	var stats dto.PublicStatsDTO
	err := r.storage.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM equipments WHERE deleted_at IS NULL AND status <> 'retired'),
            (SELECT COUNT(*) FROM equipments WHERE deleted_at IS NULL AND status = 'available'),
            (SELECT COUNT(*) FROM loan_requests WHERE status IN ('borrowed', 'overdue')),
            (SELECT COUNT(*) FROM loan_requests WHERE status = 'returned')
    `).Scan(&stats.TotalEquipment, &stats.AvailableNow, &stats.ActiveLoans, &stats.CompletedLoans)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *DashboardRepository) TopCategories(ctx context.Context, limit int) ([]dto.DashboardCountByGroup, error) {
	rows, err := r.storage.Query(ctx, `
        SELECT c.name, COUNT(l.id) AS cnt
        FROM loan_requests l
        JOIN equipments e ON l.equipment_id = e.id
        JOIN equipment_categories c ON e.category_id = c.id
        WHERE l.checked_out_at IS NOT NULL
        GROUP BY c.name
        ORDER BY cnt DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCountGroups(rows)
}

type countRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCountGroups(rows countRows) ([]dto.DashboardCountByGroup, error) {
	var list []dto.DashboardCountByGroup
	for rows.Next() {
		var g dto.DashboardCountByGroup
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}
