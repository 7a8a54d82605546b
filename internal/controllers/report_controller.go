package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lending-system/internal/entities"
	"lending-system/internal/services"
	"lending-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// GetLoanReport отдает отчет по выдачам. format=xlsx выгружает файл,
// иначе возвращается JSON.
func (c *ReportController) GetLoanReport(ctx echo.Context) error {
	filter, format := parseReportFilter(ctx)

	if format == "xlsx" {
		items, err := c.reportService.GetReportForExcel(ctx.Request().Context(), filter)
		if err != nil {
			c.logger.Error("GetLoanReport: ошибка при сборке отчета", zap.Error(err))
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.respondWithXLSX(ctx, items)
	}

	items, err := c.reportService.GetReportDTOs(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetLoanReport: ошибка при сборке отчета", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Отчет успешно сформирован", http.StatusOK)
}

func parseReportFilter(ctx echo.Context) (entities.ReportFilter, string) {
	var filter entities.ReportFilter
	format := ctx.QueryParam("format")

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}
	filter.Status = ctx.QueryParam("status")
	if v := ctx.QueryParam("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := ctx.QueryParam("borrower_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.BorrowerID = &id
		}
	}
	filter.OnlyOverdue = ctx.QueryParam("only_overdue") == "true"

	if v := ctx.QueryParam("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := ctx.QueryParam("per_page"); v != "" {
		if perPage, err := strconv.Atoi(v); err == nil && perPage > 0 {
			filter.PerPage = perPage
		}
	}

	return filter, format
}

var loanReportHeaders = []string{
	"№ заявки", "Заемщик", "Email", "Оборудование", "Инв. номер", "Категория",
	"Статус", "Начало", "Срок возврата", "Выдано", "Возвращено", "Просрочка",
}

func loanReportRow(item entities.ReportItem) []interface{} {
	const dateFmt = "02.01.2006 15:04"
	var checkedOut, returned string
	if item.CheckedOutAt.Valid {
		checkedOut = item.CheckedOutAt.Time.Format(dateFmt)
	}
	if item.ReturnedAt.Valid {
		returned = item.ReturnedAt.Time.Format(dateFmt)
	}
	late := "нет"
	if item.IsLate {
		late = "да"
	}

	return []interface{}{
		item.LoanID, item.BorrowerFio, item.BorrowerEmail, item.EquipmentName,
		item.InventoryNumber, item.CategoryName.String, item.Status,
		item.StartDate.Format(dateFmt), item.DueDate.Format(dateFmt),
		checkedOut, returned, late,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Отчет по выдачам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &loanReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := loanReportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "D", 25)
	f.SetColWidth(sheet, "E", "F", 18)
	f.SetColWidth(sheet, "H", "K", 18)

	fileName := fmt.Sprintf("loan_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
