package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lending-system/internal/entities"
	db "lending-system/internal/infrastructure/bd"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
)

const equipmentFields = "e.id, e.inventory_number, e.name, e.category_id, e.status, e.location, e.description, e.image_path, e.thumbnail_path, e.created_at, e.updated_at, c.id, c.name"

// Разрешенные поля для filter[..]/sort[..]
var equipmentAllowedFields = map[string]string{
	"status":      "e.status",
	"category_id": "e.category_id",
	"name":        "e.name",
	"created_at":  "e.created_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindByInventoryNumber(ctx context.Context, inventoryNumber string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, eq entities.Equipment) error
	UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	UpdateEquipmentImages(ctx context.Context, id uint64, imagePath, thumbnailPath string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func (r *EquipmentRepository) baseSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("equipments e").
		LeftJoin("equipment_categories c ON e.category_id = c.id").
		Where(sq.Eq{"e.deleted_at": nil})
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	base := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.inventory_number": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(e.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения COUNT-запроса: %w", err)
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	listBuilder := db.ApplyListParams(base.Columns(equipmentFields), filter, equipmentAllowedFields)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("e.id DESC")
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *eq)
	}
	return list, total, rows.Err()
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var eq entities.Equipment
	var catID *uint64
	var catName *string

	err := row.Scan(
		&eq.ID,
		&eq.InventoryNumber,
		&eq.Name,
		&eq.CategoryID,
		&eq.Status,
		&eq.Location,
		&eq.Description,
		&eq.ImagePath,
		&eq.ThumbnailPath,
		&eq.CreatedAt,
		&eq.UpdatedAt,
		&catID,
		&catName,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil && catName != nil {
		eq.Category = &entities.EquipmentCategory{ID: *catID, Name: *catName}
	}
	return &eq, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query, args, err := r.baseSelect().Columns(equipmentFields).Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	eq, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return eq, nil
}

func (r *EquipmentRepository) FindByInventoryNumber(ctx context.Context, inventoryNumber string) (*entities.Equipment, error) {
	query, args, err := r.baseSelect().Columns(equipmentFields).Where(sq.Eq{"e.inventory_number": inventoryNumber}).ToSql()
	if err != nil {
		return nil, err
	}

	eq, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return eq, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	query := `
        INSERT INTO equipments (inventory_number, name, category_id, status, location, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		eq.InventoryNumber,
		eq.Name,
		eq.CategoryID,
		eq.Status,
		eq.Location,
		eq.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, eq entities.Equipment) error {
	query := `
        UPDATE equipments
        SET inventory_number = $1, name = $2, category_id = $3, status = $4, location = $5, description = $6, updated_at = CURRENT_TIMESTAMP
        WHERE id = $7 AND deleted_at IS NULL
    `
	result, err := r.storage.Exec(ctx, query,
		eq.InventoryNumber,
		eq.Name,
		eq.CategoryID,
		eq.Status,
		eq.Location,
		eq.Description,
		eq.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEquipmentStatus принимает транзакцию: смена статуса почти всегда идет в одной транзакции с заявкой.
func (r *EquipmentRepository) UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}
	result, err := q.Exec(ctx, `UPDATE equipments SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND deleted_at IS NULL`, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateEquipmentImages(ctx context.Context, id uint64, imagePath, thumbnailPath string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE equipments SET image_path = $1, thumbnail_path = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 AND deleted_at IS NULL`,
		imagePath, thumbnailPath, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `UPDATE equipments SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
