package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	apperrors "lending-system/pkg/errors"
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, name string) (uint64, error)
	UpdateDepartment(ctx context.Context, id uint64, name string) error
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Department
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	var d entities.Department
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO departments (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, name string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE departments SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
