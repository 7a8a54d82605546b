package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/services"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/utils"
)

type AlertController struct {
	alertService services.AlertServiceInterface
	logger       *zap.Logger
}

func NewAlertController(alertService services.AlertServiceInterface, logger *zap.Logger) *AlertController {
	return &AlertController{
		alertService: alertService,
		logger:       logger,
	}
}

func (c *AlertController) GetAlerts(ctx echo.Context) error {
	onlyUnacknowledged := ctx.QueryParam("unacknowledged") == "true"

	res, err := c.alertService.GetAlerts(ctx.Request().Context(), onlyUnacknowledged)
	if err != nil {
		c.logger.Error("GetAlerts: ошибка при получении оповещений", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оповещения успешно получены", http.StatusOK)
}

func (c *AlertController) Acknowledge(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID оповещения", err, nil),
			c.logger)
	}

	if err := c.alertService.Acknowledge(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Оповещение подтверждено", http.StatusOK)
}
