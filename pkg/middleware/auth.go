package middleware

import (
	"context"
	"strings"

	"lending-system/internal/authz"
	"lending-system/internal/services"
	"lending-system/pkg/contextkeys"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/service"
	"lending-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService     service.JWTService
	permissionsSvc services.AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, permissionsSvc services.AuthPermissionServiceInterface, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtSvc,
		permissionsSvc: permissionsSvc,
		logger:         logger,
	}
}

// Auth - это основная функция middleware.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// 1. Извлекаем токен из заголовка
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		// 2. Проверяем формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		tokenString := parts[1]

		// 3. Валидируем токен
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 4. Убеждаемся, что это не refresh токен
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		// 5. Подтягиваем карту прав роли (с кешем) и кладем всё в контекст
		permNames, err := m.permissionsSvc.GetRolePermissionsNames(c.Request().Context(), claims.RoleID)
		if err != nil {
			m.logger.Error("AuthMiddleware: Не удалось получить права роли", zap.Uint64("roleID", claims.RoleID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrInternalServer, m.logger)
		}
		permissionsMap := make(map[string]bool, len(permNames))
		for _, p := range permNames {
			permissionsMap[p] = true
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, contextkeys.PermissionsMapKey, permissionsMap)
		c.SetRequest(c.Request().WithContext(ctx))

		// 6. Если все в порядке, передаем управление следующему обработчику
		return next(c)
	}
}

// AuthorizeAny пропускает запрос, если у роли есть хотя бы одно из перечисленных прав.
// Суперпользователь проходит всегда.
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			permissionsMap, err := utils.GetPermissionsMapFromCtx(c.Request().Context())
			if err != nil {
				m.logger.Warn("AuthorizeAny: Карта прав отсутствует в контексте", zap.Error(err))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}

			if permissionsMap[authz.Superuser] {
				return next(c)
			}
			for _, p := range permissions {
				if permissionsMap[p] {
					return next(c)
				}
			}

			m.logger.Warn("AuthorizeAny: Доступ запрещен", zap.Strings("required", permissions))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
