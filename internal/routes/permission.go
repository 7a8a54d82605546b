package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runPermissionRouter(
	secureGroup *echo.Group,
	permissionService services.PermissionServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	permissionCtrl := controllers.NewPermissionController(permissionService, logger)

	secureGroup.GET("/permissions", permissionCtrl.GetPermissions, authMW.AuthorizeAny(authz.PermissionsView, authz.RolesView))
}
