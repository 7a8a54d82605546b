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

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context, limit uint64, offset uint64) ([]entities.Role, uint64, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	CreateRole(ctx context.Context, tx pgx.Tx, payload dto.CreateRoleDTO) (uint64, error)
	UpdateRole(ctx context.Context, tx pgx.Tx, id uint64, name, description string) error
	DeleteRole(ctx context.Context, id uint64) error
	SetRolePermissions(ctx context.Context, tx pgx.Tx, roleID uint64, permissionIDs []uint64) error
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func (r *RoleRepository) GetRoles(ctx context.Context, limit uint64, offset uint64) ([]entities.Role, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM roles").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		"SELECT id, name, description, created_at, updated_at FROM roles ORDER BY id LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Role
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, role)
	}
	return list, total, rows.Err()
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	var role entities.Role
	err := r.storage.QueryRow(ctx,
		"SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1", id,
	).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, tx pgx.Tx, payload dto.CreateRoleDTO) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id",
		payload.Name, payload.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RoleRepository) UpdateRole(ctx context.Context, tx pgx.Tx, id uint64, name, description string) error {
	result, err := tx.Exec(ctx,
		"UPDATE roles SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
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

func (r *RoleRepository) DeleteRole(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetRolePermissions полностью перезаписывает набор прав роли.
func (r *RoleRepository) SetRolePermissions(ctx context.Context, tx pgx.Tx, roleID uint64, permissionIDs []uint64) error {
	if _, err := tx.Exec(ctx, "DELETE FROM role_permissions WHERE role_id = $1", roleID); err != nil {
		return fmt.Errorf("не удалось очистить старые права роли: %w", err)
	}

	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx,
			"INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)",
			roleID, pid,
		); err != nil {
			return fmt.Errorf("не удалось привязать право %d к роли %d: %w", pid, roleID, err)
		}
	}
	return nil
}
