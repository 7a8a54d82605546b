package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAnalyticsRouter(
	secureGroup *echo.Group,
	usageService services.UsageAnalyzerServiceInterface,
	reliabilityService services.ReliabilityServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	analyticsCtrl := controllers.NewAnalyticsController(usageService, reliabilityService, logger)

	analytics := secureGroup.Group("/analytics")

	analytics.GET("/utilization", analyticsCtrl.GetUtilization, authMW.AuthorizeAny(authz.AnalyticsView))
	analytics.GET("/utilization/summary", analyticsCtrl.GetUtilizationSummary, authMW.AuthorizeAny(authz.AnalyticsView))
	analytics.POST("/utilization/recalculate", analyticsCtrl.RecalculateUtilization, authMW.AuthorizeAny(authz.AnalyticsRecalculate))

	analytics.GET("/reliability", analyticsCtrl.GetReliabilityList, authMW.AuthorizeAny(authz.ReliabilityView))
	analytics.GET("/reliability/:id", analyticsCtrl.GetUserReliability, authMW.AuthorizeAny(authz.ReliabilityView))
	analytics.POST("/reliability/recalculate", analyticsCtrl.RecalculateReliability, authMW.AuthorizeAny(authz.AnalyticsRecalculate))
}
