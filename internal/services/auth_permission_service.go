package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/repositories"
	apperrors "lending-system/pkg/errors"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error
}

// AuthPermissionService отдает привилегии роли, пряча БД за Redis-кешем:
// middleware дергает его на каждый запрос.
type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func rolePermissionsCacheKey(roleID uint64) string {
	return fmt.Sprintf("auth:permissions:role:%d", roleID)
}

func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	cacheKey := rolePermissionsCacheKey(roleID)
	var permissions []string

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cached), &permissions); err == nil {
			return permissions, nil
		}
		s.logger.Warn("Битый кеш привилегий, идем в БД", zap.String("key", cacheKey), zap.Uint64("roleID", roleID))
	}

	permissions, errDB := s.permissionRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	if errDB != nil {
		s.logger.Error("Не удалось получить привилегии роли из БД", zap.Uint64("roleID", roleID), zap.Error(errDB))
		return nil, apperrors.ErrInternalServer
	}

	if len(permissions) > 0 {
		payload, errMarshal := json.Marshal(permissions)
		if errMarshal == nil {
			if errSet := s.cacheRepo.Set(ctx, cacheKey, string(payload), s.cacheTTL); errSet != nil {
				s.logger.Error("Не удалось закешировать привилегии роли", zap.Uint64("roleID", roleID), zap.Error(errSet))
			}
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	cacheKey := rolePermissionsCacheKey(roleID)
	if err := s.cacheRepo.Del(ctx, cacheKey); err != nil {
		s.logger.Error("Ошибка инвалидации кеша привилегий роли", zap.Uint64("roleID", roleID), zap.Error(err))
		return err
	}
	s.logger.Info("Кеш привилегий роли сброшен", zap.Uint64("roleID", roleID))
	return nil
}
