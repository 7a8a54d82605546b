package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runDepartmentRouter(
	secureGroup *echo.Group,
	departmentService services.DepartmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	departmentCtrl := controllers.NewDepartmentController(departmentService, logger)

	departments := secureGroup.Group("/department")

	departments.GET("", departmentCtrl.GetDepartments, authMW.AuthorizeAny(authz.DepartmentsView))
	departments.GET("/:id", departmentCtrl.FindDepartment, authMW.AuthorizeAny(authz.DepartmentsView))
	departments.POST("", departmentCtrl.CreateDepartment, authMW.AuthorizeAny(authz.DepartmentsCreate))
	departments.PUT("/:id", departmentCtrl.UpdateDepartment, authMW.AuthorizeAny(authz.DepartmentsUpdate))
	departments.DELETE("/:id", departmentCtrl.DeleteDepartment, authMW.AuthorizeAny(authz.DepartmentsDelete))
}
