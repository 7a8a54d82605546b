package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentCategoryRouter(
	secureGroup *echo.Group,
	categoryService services.EquipmentCategoryServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	categoryCtrl := controllers.NewEquipmentCategoryController(categoryService, logger)

	categories := secureGroup.Group("/equipment-category")

	// Просмотр каталога доступен всем авторизованным с 'catalogs:view'
	categories.GET("", categoryCtrl.GetCategories, authMW.AuthorizeAny(authz.CatalogsView))
	categories.GET("/:id", categoryCtrl.FindCategory, authMW.AuthorizeAny(authz.CatalogsView))
	categories.POST("", categoryCtrl.CreateCategory, authMW.AuthorizeAny(authz.CatalogsCreate))
	categories.PUT("/:id", categoryCtrl.UpdateCategory, authMW.AuthorizeAny(authz.CatalogsUpdate))
	categories.DELETE("/:id", categoryCtrl.DeleteCategory, authMW.AuthorizeAny(authz.CatalogsDelete))
}
