package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/dto"
	"lending-system/internal/entities"
	"lending-system/internal/services"
	apperrors "lending-system/pkg/errors"
	"lending-system/pkg/utils"
)

type LoanController struct {
	loanService services.LoanServiceInterface
	logger      *zap.Logger
}

func NewLoanController(loanService services.LoanServiceInterface, logger *zap.Logger) *LoanController {
	return &LoanController{
		loanService: loanService,
		logger:      logger,
	}
}

func (c *LoanController) loanID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID заявки", err,
			map[string]interface{}{"param": ctx.Param("id")})
	}
	return id, nil
}

func (c *LoanController) GetLoans(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.loanService.GetLoans(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetLoans: ошибка при получении списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список заявок успешно получен", http.StatusOK, total)
}

func (c *LoanController) FindLoan(ctx echo.Context) error {
	id, err := c.loanID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.FindLoan(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно найдена", http.StatusOK)
}

func (c *LoanController) CreateLoan(ctx echo.Context) error {
	var payload dto.CreateLoanRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.CreateLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateLoan: ошибка при создании заявки", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *LoanController) ApproveLoan(ctx echo.Context) error {
	return c.decide(ctx, c.loanService.ApproveLoan, "Заявка одобрена")
}

func (c *LoanController) RejectLoan(ctx echo.Context) error {
	return c.decide(ctx, c.loanService.RejectLoan, "Заявка отклонена")
}

func (c *LoanController) decide(
	ctx echo.Context,
	action func(context.Context, uint64, dto.LoanDecisionDTO) (*entities.LoanRequest, error),
	message string,
) error {
	id, err := c.loanID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.LoanDecisionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := action(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("Ошибка при решении по заявке", zap.Uint64("loanID", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}

func (c *LoanController) CheckoutLoan(ctx echo.Context) error {
	id, err := c.loanID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.CheckoutLoan(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("CheckoutLoan: ошибка при выдаче оборудования", zap.Uint64("loanID", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование выдано", http.StatusOK)
}

func (c *LoanController) ReturnLoan(ctx echo.Context) error {
	id, err := c.loanID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.ReturnLoan(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("ReturnLoan: ошибка при приеме оборудования", zap.Uint64("loanID", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование принято", http.StatusOK)
}

func (c *LoanController) CancelLoan(ctx echo.Context) error {
	id, err := c.loanID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.loanService.CancelLoan(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка отменена", http.StatusOK)
}
