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

const reservationFields = `r.id, r.equipment_id, r.user_id, r.start_date, r.end_date, r.status, r.note,
	r.created_at, r.updated_at, e.inventory_number, e.name, u.fio`

var reservationAllowedFields = map[string]string{
	"status":       "r.status",
	"equipment_id": "r.equipment_id",
	"user_id":      "r.user_id",
	"start_date":   "r.start_date",
	"created_at":   "r.created_at",
}

type ReservationRepositoryInterface interface {
	GetReservations(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.Reservation, uint64, error)
	FindReservation(ctx context.Context, id uint64) (*entities.Reservation, error)
	CreateReservation(ctx context.Context, res entities.Reservation) (uint64, error)
	HasOverlap(ctx context.Context, equipmentID uint64, start, end time.Time) (bool, error)
	SetStatus(ctx context.Context, id uint64, status string) error
}

type ReservationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReservationRepository(storage *pgxpool.Pool, logger *zap.Logger) ReservationRepositoryInterface {
	return &ReservationRepository{storage: storage, logger: logger}
}

func (r *ReservationRepository) baseSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("reservations r").
		LeftJoin("equipments e ON r.equipment_id = e.id").
		LeftJoin("users u ON r.user_id = u.id")
}

func scanReservation(row pgx.Row) (*entities.Reservation, error) {
	var res entities.Reservation
	var invNumber, eqName, fio *string

	err := row.Scan(
		&res.ID,
		&res.EquipmentID,
		&res.UserID,
		&res.StartDate,
		&res.EndDate,
		&res.Status,
		&res.Note,
		&res.CreatedAt,
		&res.UpdatedAt,
		&invNumber,
		&eqName,
		&fio,
	)
	if err != nil {
		return nil, err
	}

	if eqName != nil {
		res.Equipment = &entities.Equipment{ID: res.EquipmentID, Name: *eqName}
		if invNumber != nil {
			res.Equipment.InventoryNumber = *invNumber
		}
	}
	if fio != nil {
		res.User = &entities.User{ID: res.UserID, Fio: *fio}
	}
	return &res, nil
}

func (r *ReservationRepository) GetReservations(ctx context.Context, filter types.Filter, security sq.Sqlizer) ([]entities.Reservation, uint64, error) {
	base := r.baseSelect()
	if security != nil {
		base = base.Where(security)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.inventory_number": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(r.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Reservation{}, 0, nil
	}

	listBuilder := db.ApplyListParams(base.Columns(reservationFields), filter, reservationAllowedFields)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("r.start_date ASC")
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

	var list []entities.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *res)
	}
	return list, total, rows.Err()
}

func (r *ReservationRepository) FindReservation(ctx context.Context, id uint64) (*entities.Reservation, error) {
	query, args, err := r.baseSelect().Columns(reservationFields).Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	res, err := scanReservation(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res entities.Reservation) (uint64, error) {
	query := `
        INSERT INTO reservations (equipment_id, user_id, start_date, end_date, status, note)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		res.EquipmentID,
		res.UserID,
		res.StartDate,
		res.EndDate,
		res.Status,
		res.Note,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// HasOverlap проверяет пересечение с активными бронями по тому же оборудованию.
func (r *ReservationRepository) HasOverlap(ctx context.Context, equipmentID uint64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM reservations
            WHERE equipment_id = $1 AND status = 'active'
              AND start_date < $3 AND end_date > $2
        )
    `, equipmentID, start, end).Scan(&exists)
	return exists, err
}

func (r *ReservationRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE reservations SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
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
