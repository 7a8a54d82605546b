package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runReservationRouter(
	secureGroup *echo.Group,
	reservationService services.ReservationServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reservationCtrl := controllers.NewReservationController(reservationService, logger)

	reservations := secureGroup.Group("/reservation")

	reservations.GET("", reservationCtrl.GetReservations, authMW.AuthorizeAny(authz.ReservationsView))
	reservations.GET("/:id", reservationCtrl.FindReservation, authMW.AuthorizeAny(authz.ReservationsView))
	reservations.POST("", reservationCtrl.CreateReservation, authMW.AuthorizeAny(authz.ReservationsCreate))
	reservations.POST("/:id/cancel", reservationCtrl.CancelReservation, authMW.AuthorizeAny(authz.ReservationsUpdate, authz.ReservationsCreate))
}
