package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/services"
	"lending-system/pkg/utils"
)

type PermissionController struct {
	permissionService services.PermissionServiceInterface
	logger            *zap.Logger
}

func NewPermissionController(permissionService services.PermissionServiceInterface, logger *zap.Logger) *PermissionController {
	return &PermissionController{
		permissionService: permissionService,
		logger:            logger,
	}
}

func (c *PermissionController) GetPermissions(ctx echo.Context) error {
	res, err := c.permissionService.GetPermissions(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetPermissions: ошибка при получении привилегий", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Привилегии успешно получены", http.StatusOK)
}
