package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	equipments := secureGroup.Group("/equipment")

	equipments.GET("", equipmentCtrl.GetEquipments, authMW.AuthorizeAny(authz.EquipmentView))
	equipments.GET("/:id", equipmentCtrl.FindEquipment, authMW.AuthorizeAny(authz.EquipmentView))
	equipments.POST("", equipmentCtrl.CreateEquipment, authMW.AuthorizeAny(authz.EquipmentCreate))
	equipments.PUT("/:id", equipmentCtrl.UpdateEquipment, authMW.AuthorizeAny(authz.EquipmentUpdate))
	equipments.DELETE("/:id", equipmentCtrl.DeleteEquipment, authMW.AuthorizeAny(authz.EquipmentDelete))
}
