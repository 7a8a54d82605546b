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

// AnalyticsController отдает загрузку оборудования и рейтинги надежности.
type AnalyticsController struct {
	usageSvc       services.UsageAnalyzerServiceInterface
	reliabilitySvc services.ReliabilityServiceInterface
	logger         *zap.Logger
}

func NewAnalyticsController(
	usageSvc services.UsageAnalyzerServiceInterface,
	reliabilitySvc services.ReliabilityServiceInterface,
	logger *zap.Logger,
) *AnalyticsController {
	return &AnalyticsController{
		usageSvc:       usageSvc,
		reliabilitySvc: reliabilitySvc,
		logger:         logger,
	}
}

func (c *AnalyticsController) GetUtilization(ctx echo.Context) error {
	classification := ctx.QueryParam("classification")

	res, err := c.usageSvc.GetUtilization(ctx.Request().Context(), classification)
	if err != nil {
		c.logger.Error("GetUtilization: ошибка при получении загрузки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Загрузка оборудования получена", http.StatusOK)
}

func (c *AnalyticsController) GetUtilizationSummary(ctx echo.Context) error {
	res, err := c.usageSvc.GetSummary(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetUtilizationSummary: ошибка при сборке сводки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сводка по загрузке получена", http.StatusOK)
}

func (c *AnalyticsController) RecalculateUtilization(ctx echo.Context) error {
	count, err := c.usageSvc.Recalculate(ctx.Request().Context())
	if err != nil {
		c.logger.Error("RecalculateUtilization: ошибка пересчета", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int{"recalculated": count},
		"Загрузка оборудования пересчитана", http.StatusOK)
}

func (c *AnalyticsController) GetReliabilityList(ctx echo.Context) error {
	grade := ctx.QueryParam("grade")

	res, err := c.reliabilitySvc.GetReliabilityList(ctx.Request().Context(), grade)
	if err != nil {
		c.logger.Error("GetReliabilityList: ошибка при получении рейтингов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рейтинги надежности получены", http.StatusOK)
}

func (c *AnalyticsController) GetUserReliability(ctx echo.Context) error {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID пользователя", err, nil),
			c.logger)
	}

	res, err := c.reliabilitySvc.GetReliability(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рейтинг надежности получен", http.StatusOK)
}

func (c *AnalyticsController) RecalculateReliability(ctx echo.Context) error {
	count, err := c.reliabilitySvc.RecalculateAll(ctx.Request().Context())
	if err != nil {
		c.logger.Error("RecalculateReliability: ошибка пересчета", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int{"recalculated": count},
		"Рейтинги надежности пересчитаны", http.StatusOK)
}
