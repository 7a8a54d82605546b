package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	db "lending-system/internal/infrastructure/bd"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
)

const userFields = "u.id, u.fio, u.email, u.phone_number, u.password, u.role_id, u.department_id, u.is_active, u.photo_url, u.created_at, u.updated_at, r.name"

var userAllowedFields = map[string]string{
	"role_id":       "u.role_id",
	"department_id": "u.department_id",
	"is_active":     "u.is_active",
	"fio":           "u.fio",
	"created_at":    "u.created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error)
	UpdateUser(ctx context.Context, user entities.User) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func (r *UserRepository) baseSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From("users u").
		LeftJoin("roles r ON u.role_id = r.id").
		Where(sq.Eq{"u.deleted_at": nil})
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var roleName *string

	err := row.Scan(
		&u.ID,
		&u.Fio,
		&u.Email,
		&u.PhoneNumber,
		&u.Password,
		&u.RoleID,
		&u.DepartmentID,
		&u.IsActive,
		&u.PhotoURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&roleName,
	)
	if err != nil {
		return nil, err
	}
	if roleName != nil {
		u.Role = &entities.Role{ID: u.RoleID, Name: *roleName}
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	base := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"u.fio": pattern},
			sq.ILike{"u.email": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(u.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	listBuilder := db.ApplyListParams(base.Columns(userFields), filter, userAllowedFields)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("u.id DESC")
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

	var list []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *u)
	}
	return list, total, rows.Err()
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query, args, err := r.baseSelect().Columns(userFields).Where(sq.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	u, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := r.baseSelect().Columns(userFields).Where(sq.Eq{"u.email": email}).ToSql()
	if err != nil {
		return nil, err
	}

	u, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error) {
	query := `
        INSERT INTO users (fio, email, phone_number, password, role_id, department_id, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, TRUE)
        RETURNING id
    `
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Fio,
		payload.Email,
		payload.PhoneNumber,
		passwordHash,
		payload.RoleID,
		payload.DepartmentID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user entities.User) error {
	query := `
        UPDATE users
        SET fio = $1, email = $2, phone_number = $3, role_id = $4, department_id = $5, is_active = $6, updated_at = CURRENT_TIMESTAMP
        WHERE id = $7 AND deleted_at IS NULL
    `
	result, err := r.storage.Exec(ctx, query,
		user.Fio,
		user.Email,
		user.PhoneNumber,
		user.RoleID,
		user.DepartmentID,
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
