package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runDashboardRouter(
	api *echo.Group,
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	publicStatsService services.PublicStatsServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, publicStatsService, logger)

	// Публичный счетчик без авторизации, отдается из кеша
	api.GET("/public/stats", dashboardCtrl.GetPublicStats)

	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetStats, authMW.AuthorizeAny(authz.DashboardView))
}
