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

type departmentPayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

type DepartmentController struct {
	departmentService services.DepartmentServiceInterface
	logger            *zap.Logger
}

func NewDepartmentController(departmentService services.DepartmentServiceInterface, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
		logger:            logger,
	}
}

func (c *DepartmentController) GetDepartments(ctx echo.Context) error {
	res, err := c.departmentService.GetDepartments(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetDepartments: ошибка при получении кафедр", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Кафедры успешно получены", http.StatusOK)
}

func (c *DepartmentController) FindDepartment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID кафедры", err, nil),
			c.logger)
	}

	res, err := c.departmentService.FindDepartment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Кафедра успешно найдена", http.StatusOK)
}

func (c *DepartmentController) CreateDepartment(ctx echo.Context) error {
	var payload departmentPayload
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.departmentService.CreateDepartment(ctx.Request().Context(), payload.Name)
	if err != nil {
		c.logger.Error("CreateDepartment: ошибка при создании кафедры", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Кафедра успешно создана", http.StatusCreated)
}

func (c *DepartmentController) UpdateDepartment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID кафедры", err, nil),
			c.logger)
	}

	var payload departmentPayload
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.departmentService.UpdateDepartment(ctx.Request().Context(), id, payload.Name)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Кафедра успешно обновлена", http.StatusOK)
}

func (c *DepartmentController) DeleteDepartment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID кафедры", err, nil),
			c.logger)
	}

	if err := c.departmentService.DeleteDepartment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Кафедра успешно удалена", http.StatusOK)
}
