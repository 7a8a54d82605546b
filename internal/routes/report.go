package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/report/loans", reportController.GetLoanReport, authMW.AuthorizeAny(authz.ReportsView))
}
