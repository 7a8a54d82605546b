package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/services"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/utils"
)

type EquipmentCategoryController struct {
	categoryService services.EquipmentCategoryServiceInterface
	logger          *zap.Logger
}

func NewEquipmentCategoryController(
	categoryService services.EquipmentCategoryServiceInterface,
	logger *zap.Logger,
) *EquipmentCategoryController {
	return &EquipmentCategoryController{
		categoryService: categoryService,
		logger:          logger,
	}
}

func (c *EquipmentCategoryController) GetCategories(ctx echo.Context) error {
	limit := uint64(utils.DefaultLimit)
	if v := ctx.QueryParam("limit"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := uint64(0)
	if v := ctx.QueryParam("offset"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			offset = parsed
		}
	}

	res, total, err := c.categoryService.GetCategories(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("GetCategories: ошибка при получении категорий", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категории успешно получены", http.StatusOK, total)
}

func (c *EquipmentCategoryController) FindCategory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID категории", err, nil),
			c.logger)
	}

	res, err := c.categoryService.FindCategory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно найдена", http.StatusOK)
}

func (c *EquipmentCategoryController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateCategory: ошибка при создании категории", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}

func (c *EquipmentCategoryController) UpdateCategory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID категории", err, nil),
			c.logger)
	}

	var payload dto.UpdateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.UpdateCategory(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно обновлена", http.StatusOK)
}

func (c *EquipmentCategoryController) DeleteCategory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID категории", err, nil),
			c.logger)
	}

	if err := c.categoryService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Категория успешно удалена", http.StatusOK)
}
