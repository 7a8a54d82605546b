package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	apperrors "lending-system/pkg/errors"
)

const categoryTable = "equipment_categories"
const categoryFields = "id, name, description, created_at, updated_at"

type EquipmentCategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, limit uint64, offset uint64) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, dto dto.CreateEquipmentCategoryDTO) (uint64, error)
	UpdateCategory(ctx context.Context, id uint64, name, description string) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type EquipmentCategoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentCategoryRepository(storage *pgxpool.Pool) EquipmentCategoryRepositoryInterface {
	return &EquipmentCategoryRepository{storage: storage}
}

func (r *EquipmentCategoryRepository) GetCategories(ctx context.Context, limit uint64, offset uint64) ([]entities.EquipmentCategory, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", categoryTable)).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name LIMIT $1 OFFSET $2", categoryFields, categoryTable)
	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.EquipmentCategory
	for rows.Next() {
		var c entities.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *EquipmentCategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", categoryFields, categoryTable)

	var c entities.EquipmentCategory
	err := r.storage.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *EquipmentCategoryRepository) CreateCategory(ctx context.Context, dto dto.CreateEquipmentCategoryDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("INSERT INTO %s (name, description) VALUES ($1, $2) RETURNING id", categoryTable),
		dto.Name, dto.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentCategoryRepository) UpdateCategory(ctx context.Context, id uint64, name, description string) error {
	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3", categoryTable),
		name, description, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentCategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", categoryTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
