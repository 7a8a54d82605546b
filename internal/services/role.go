package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
)

type RoleServiceInterface interface {
	GetRoles(ctx context.Context, limit, offset uint64) ([]entities.Role, uint64, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error)
	UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*entities.Role, error)
	DeleteRole(ctx context.Context, id uint64) error
}

type RoleService struct {
	txManager      repositories.TxManagerInterface
	roleRepo       repositories.RoleRepositoryInterface
	permissionsSvc AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewRoleService(
	txManager repositories.TxManagerInterface,
	roleRepo repositories.RoleRepositoryInterface,
	permissionsSvc AuthPermissionServiceInterface,
	logger *zap.Logger,
) RoleServiceInterface {
	return &RoleService{
		txManager:      txManager,
		roleRepo:       roleRepo,
		permissionsSvc: permissionsSvc,
		logger:         logger,
	}
}

func (s *RoleService) GetRoles(ctx context.Context, limit, offset uint64) ([]entities.Role, uint64, error) {
	return s.roleRepo.GetRoles(ctx, limit, offset)
}

func (s *RoleService) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	return s.roleRepo.FindRole(ctx, id)
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error) {
	var roleID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.roleRepo.CreateRole(ctx, tx, payload)
		if err != nil {
			return err
		}
		roleID = id
		if len(payload.PermissionIDs) > 0 {
			return s.roleRepo.SetRolePermissions(ctx, tx, id, payload.PermissionIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при создании роли", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Роль создана", zap.Uint64("roleID", roleID), zap.String("name", payload.Name))
	return s.roleRepo.FindRole(ctx, roleID)
}

func (s *RoleService) UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*entities.Role, error) {
	role, err := s.roleRepo.FindRole(ctx, id)
	if err != nil {
		return nil, err
	}

	name := role.Name
	description := role.Description
	if payload.Name != nil {
		name = *payload.Name
	}
	if payload.Description != nil {
		description = *payload.Description
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.roleRepo.UpdateRole(ctx, tx, id, name, description); err != nil {
			return err
		}
		if payload.PermissionIDs != nil {
			return s.roleRepo.SetRolePermissions(ctx, tx, id, payload.PermissionIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении роли", zap.Uint64("roleID", id), zap.Error(err))
		return nil, err
	}

	// Права роли изменились — кеш в middleware больше не валиден
	if err := s.permissionsSvc.InvalidateRolePermissionsCache(ctx, id); err != nil {
		s.logger.Warn("Не удалось сбросить кеш привилегий роли", zap.Uint64("roleID", id), zap.Error(err))
	}
	return s.roleRepo.FindRole(ctx, id)
}

func (s *RoleService) DeleteRole(ctx context.Context, id uint64) error {
	if err := s.roleRepo.DeleteRole(ctx, id); err != nil {
		return err
	}
	return s.permissionsSvc.InvalidateRolePermissionsCache(ctx, id)
}
