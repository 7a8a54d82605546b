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

type ReservationController struct {
	reservationService services.ReservationServiceInterface
	logger             *zap.Logger
}

func NewReservationController(
	reservationService services.ReservationServiceInterface,
	logger *zap.Logger,
) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
		logger:             logger,
	}
}

func (c *ReservationController) GetReservations(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.reservationService.GetReservations(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetReservations: ошибка при получении броней", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список броней успешно получен", http.StatusOK, total)
}

func (c *ReservationController) FindReservation(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID брони", err, nil),
			c.logger)
	}

	res, err := c.reservationService.FindReservation(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Бронь успешно найдена", http.StatusOK)
}

func (c *ReservationController) CreateReservation(ctx echo.Context) error {
	var payload dto.CreateReservationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reservationService.CreateReservation(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateReservation: ошибка при создании брони", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Бронь успешно создана", http.StatusCreated)
}

func (c *ReservationController) CancelReservation(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID брони", err, nil),
			c.logger)
	}

	if err := c.reservationService.CancelReservation(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Бронь отменена", http.StatusOK)
}
