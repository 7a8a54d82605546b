package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	apperrors "lending-system/pkg/errors"
)

type AnalyticsRepositoryInterface interface {
	UpsertUtilization(ctx context.Context, u entities.EquipmentUtilization) error
	GetUtilization(ctx context.Context, classification string) ([]entities.EquipmentUtilization, error)
	UpsertReliability(ctx context.Context, r entities.UserReliability) error
	GetReliability(ctx context.Context, userID uint64) (*entities.UserReliability, error)
	GetReliabilityList(ctx context.Context, grade string) ([]entities.UserReliability, error)
}

type AnalyticsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAnalyticsRepository(storage *pgxpool.Pool, logger *zap.Logger) AnalyticsRepositoryInterface {
	return &AnalyticsRepository{storage: storage, logger: logger}
}

// UpsertUtilization хранит одну строку на единицу оборудования, перезаписывая прошлый расчет.
func (r *AnalyticsRepository) UpsertUtilization(ctx context.Context, u entities.EquipmentUtilization) error {
	_, err := r.storage.Exec(ctx, `
        INSERT INTO equipment_utilization
            (equipment_id, window_start, window_end, borrowed_days, utilization_rate, classification, computed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (equipment_id) DO UPDATE SET
            window_start = EXCLUDED.window_start,
            window_end = EXCLUDED.window_end,
            borrowed_days = EXCLUDED.borrowed_days,
            utilization_rate = EXCLUDED.utilization_rate,
            classification = EXCLUDED.classification,
            computed_at = EXCLUDED.computed_at
    `,
		u.EquipmentID, u.WindowStart, u.WindowEnd, u.BorrowedDays,
		u.UtilizationRate, u.Classification, u.ComputedAt,
	)
	return err
}

func (r *AnalyticsRepository) GetUtilization(ctx context.Context, classification string) ([]entities.EquipmentUtilization, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(`a.id, a.equipment_id, a.window_start, a.window_end, a.borrowed_days,
			a.utilization_rate, a.classification, a.computed_at, e.name, e.inventory_number, e.status`).
		From("equipment_utilization a").
		LeftJoin("equipments e ON a.equipment_id = e.id").
		OrderBy("a.utilization_rate DESC")
	if classification != "" {
		builder = builder.Where(sq.Eq{"a.classification": classification})
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

	var list []entities.EquipmentUtilization
	for rows.Next() {
		var u entities.EquipmentUtilization
		var eqName, invNumber, eqStatus *string
		err = rows.Scan(
			&u.ID, &u.EquipmentID, &u.WindowStart, &u.WindowEnd, &u.BorrowedDays,
			&u.UtilizationRate, &u.Classification, &u.ComputedAt, &eqName, &invNumber, &eqStatus,
		)
		if err != nil {
			return nil, err
		}
		if eqName != nil {
			u.Equipment = &entities.Equipment{ID: u.EquipmentID, Name: *eqName}
			if invNumber != nil {
				u.Equipment.InventoryNumber = *invNumber
			}
			if eqStatus != nil {
				u.Equipment.Status = *eqStatus
			}
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepository) UpsertReliability(ctx context.Context, rel entities.UserReliability) error {
	_, err := r.storage.Exec(ctx, `
        INSERT INTO user_reliability
            (user_id, total_loans, on_time_returns, late_returns, no_shows,
             on_time_rate, no_show_rate, score, grade, computed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (user_id) DO UPDATE SET
            total_loans = EXCLUDED.total_loans,
            on_time_returns = EXCLUDED.on_time_returns,
            late_returns = EXCLUDED.late_returns,
            no_shows = EXCLUDED.no_shows,
            on_time_rate = EXCLUDED.on_time_rate,
            no_show_rate = EXCLUDED.no_show_rate,
            score = EXCLUDED.score,
            grade = EXCLUDED.grade,
            computed_at = EXCLUDED.computed_at
    `,
		rel.UserID, rel.TotalLoans, rel.OnTimeReturns, rel.LateReturns, rel.NoShows,
		rel.OnTimeRate, rel.NoShowRate, rel.Score, rel.Grade, rel.ComputedAt,
	)
	return err
}

func (r *AnalyticsRepository) GetReliability(ctx context.Context, userID uint64) (*entities.UserReliability, error) {
	row := r.storage.QueryRow(ctx, `
        SELECT r.id, r.user_id, r.total_loans, r.on_time_returns, r.late_returns, r.no_shows,
               r.on_time_rate, r.no_show_rate, r.score, r.grade, r.computed_at, u.fio, u.email
        FROM user_reliability r
        LEFT JOIN users u ON r.user_id = u.id
        WHERE r.user_id = $1
    `, userID)

	rel, err := scanReliability(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return rel, nil
}

func (r *AnalyticsRepository) GetReliabilityList(ctx context.Context, grade string) ([]entities.UserReliability, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(`r.id, r.user_id, r.total_loans, r.on_time_returns, r.late_returns, r.no_shows,
			r.on_time_rate, r.no_show_rate, r.score, r.grade, r.computed_at, u.fio, u.email`).
		From("user_reliability r").
		LeftJoin("users u ON r.user_id = u.id").
		OrderBy("r.score DESC")
	if grade != "" {
		builder = builder.Where(sq.Eq{"r.grade": grade})
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

	var list []entities.UserReliability
	for rows.Next() {
		rel, err := scanReliability(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rel)
	}
	return list, rows.Err()
}

func scanReliability(row pgx.Row) (*entities.UserReliability, error) {
	var rel entities.UserReliability
	var fio, email *string
	err := row.Scan(
		&rel.ID, &rel.UserID, &rel.TotalLoans, &rel.OnTimeReturns, &rel.LateReturns, &rel.NoShows,
		&rel.OnTimeRate, &rel.NoShowRate, &rel.Score, &rel.Grade, &rel.ComputedAt, &fio, &email,
	)
	if err != nil {
		return nil, err
	}
	if fio != nil {
		rel.User = &entities.User{ID: rel.UserID, Fio: *fio}
		if email != nil {
			rel.User.Email = *email
		}
	}
	return &rel, nil
}
