package services

import (
	"context"

	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/service"
	"lending-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.MeDTO, error)
}

type AuthService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionsSvc AuthPermissionServiceInterface
	jwtSvc         service.JWTService
	logger         *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	permissionsSvc AuthPermissionServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:       userRepo,
		permissionsSvc: permissionsSvc,
		jwtSvc:         jwtSvc,
		logger:         logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		// Не раскрываем, существует ли такой email
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Попытка входа в деактивированный аккаунт", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrForbidden
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.RoleID)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	s.logger.Info("Успешный вход", zap.Uint64("userID", user.ID))
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrUnauthorized
	}

	// Пользователь мог быть деактивирован после выдачи refresh-токена
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.RoleID)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов при обновлении", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.MeDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.permissionsSvc.GetRolePermissionsNames(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	me := &dto.MeDTO{
		ID:           user.ID,
		Fio:          user.Fio,
		Email:        user.Email,
		DepartmentID: user.DepartmentID,
		Permissions:  permissions,
	}
	if user.Role != nil {
		me.RoleName = user.Role.Name
	}
	return me, nil
}
