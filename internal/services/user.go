package services

import (
	"context"

	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/types"
	"lending-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionsSvc AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	permissionsSvc AuthPermissionServiceInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:       userRepo,
		permissionsSvc: permissionsSvc,
		logger:         logger,
	}
}

func (s *UserService) authContext(ctx context.Context) (*authz.Context, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return &authz.Context{Actor: actor, Permissions: permissions}, nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	authCtx, err := s.authContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = user
	if !authz.CanDo(authz.UsersView, *authCtx) {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err == nil && existing != nil {
		return nil, apperrors.NewInvalidInputError("Пользователь с таким email уже существует")
	}

	passwordHash, err := utils.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	// Телефон храним в нормализованном виде (9 цифр без кода страны)
	if payload.PhoneNumber != "" {
		payload.PhoneNumber = utils.NormalizeTajikPhoneNumber(payload.PhoneNumber)
	}

	id, err := s.userRepo.CreateUser(ctx, payload, passwordHash)
	if err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Пользователь создан", zap.Uint64("id", id), zap.String("email", payload.Email))
	return s.userRepo.FindUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	authCtx, err := s.authContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	authCtx.Target = user
	if !authz.CanDo(authz.UsersUpdate, *authCtx) {
		return nil, apperrors.ErrForbidden
	}

	roleChanged := false
	if payload.Fio != nil {
		user.Fio = *payload.Fio
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.PhoneNumber != nil {
		user.PhoneNumber = utils.NormalizeTajikPhoneNumber(*payload.PhoneNumber)
	}
	if payload.RoleID != nil && *payload.RoleID != user.RoleID {
		// Смену роли разрешаем только администраторам
		if !authCtx.HasPermission(authz.Superuser) && !authCtx.HasPermission(authz.ScopeAll) {
			return nil, apperrors.ErrForbidden
		}
		user.RoleID = *payload.RoleID
		roleChanged = true
	}
	if payload.DepartmentID != nil {
		user.DepartmentID = payload.DepartmentID
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.logger.Error("Ошибка при обновлении пользователя", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	if roleChanged {
		_ = s.permissionsSvc.InvalidateRolePermissionsCache(ctx, user.RoleID)
	}
	return s.userRepo.FindUserByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	authCtx, err := s.authContext(ctx)
	if err != nil {
		return err
	}
	if authCtx.Actor.ID == id {
		return apperrors.NewInvalidInputError("Нельзя удалить собственный аккаунт")
	}
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	authCtx.Target = user
	if !authz.CanDo(authz.UsersDelete, *authCtx) {
		return apperrors.ErrForbidden
	}
	return s.userRepo.DeleteUser(ctx, id)
}
