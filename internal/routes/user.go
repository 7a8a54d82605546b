package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(
	secureGroup *echo.Group,
	userService services.UserServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	userCtrl := controllers.NewUserController(userService, logger)

	secureGroup.GET("/users", userCtrl.GetUsers, authMW.AuthorizeAny(authz.UsersView))
	secureGroup.GET("/user/:id", userCtrl.FindUser, authMW.AuthorizeAny(authz.UsersView))
	secureGroup.POST("/user", userCtrl.CreateUser, authMW.AuthorizeAny(authz.UsersCreate))
	secureGroup.PUT("/user/:id", userCtrl.UpdateUser, authMW.AuthorizeAny(authz.UsersUpdate, authz.ProfileUpdate))
	secureGroup.DELETE("/user/:id", userCtrl.DeleteUser, authMW.AuthorizeAny(authz.UsersDelete))
}
