package routes

import (
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.Refresh)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
