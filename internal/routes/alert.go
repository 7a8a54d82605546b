package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAlertRouter(
	secureGroup *echo.Group,
	alertService services.AlertServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	alertCtrl := controllers.NewAlertController(alertService, logger)

	alerts := secureGroup.Group("/alert")

	alerts.GET("", alertCtrl.GetAlerts, authMW.AuthorizeAny(authz.AlertsView))
	alerts.POST("/:id/ack", alertCtrl.Acknowledge, authMW.AuthorizeAny(authz.AlertsAck))
}
