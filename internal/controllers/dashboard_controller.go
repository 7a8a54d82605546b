package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/services"
	"lending-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	publicStatsSvc   services.PublicStatsServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(
	dashboardService services.DashboardServiceInterface,
	publicStatsSvc services.PublicStatsServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		publicStatsSvc:   publicStatsSvc,
		logger:           logger,
	}
}

func (c *DashboardController) GetStats(ctx echo.Context) error {
	res, err := c.dashboardService.GetStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetStats: ошибка при сборке статистики", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статистика успешно получена", http.StatusOK)
}

// GetPublicStats — публичный эндпоинт, без авторизации.
func (c *DashboardController) GetPublicStats(ctx echo.Context) error {
	res, err := c.publicStatsSvc.GetPublicStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetPublicStats: ошибка при сборке публичных счетчиков", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Публичная статистика получена", http.StatusOK)
}
