package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/entities"
)

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
	GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermissionRepository(storage *pgxpool.Pool, logger *zap.Logger) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage, logger: logger}
}

func (r *PermissionRepository) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name, description, created_at, updated_at FROM permissions ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Permission
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetPermissionsNamesByRoleID — основа быстрой авторизации, результат кешируется в Redis.
func (r *PermissionRepository) GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	query := `
        SELECT p.name
        FROM permissions p
        JOIN role_permissions rp ON rp.permission_id = p.id
        WHERE rp.role_id = $1
        ORDER BY p.name
    `
	rows, err := r.storage.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
