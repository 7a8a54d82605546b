package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/filestorage"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUploadRouter(
	secureGroup *echo.Group,
	fileStorage filestorage.FileStorageInterface,
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	uploadCtrl := controllers.NewUploadController(fileStorage, equipmentService, logger)

	secureGroup.POST("/equipment/:id/images", uploadCtrl.UploadEquipmentImages, authMW.AuthorizeAny(authz.EquipmentUpdate))
}
