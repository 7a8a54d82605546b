package routes

import (
	"lending-system/internal/authz"
	"lending-system/internal/controllers"
	"lending-system/internal/services"
	"lending-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runLoanRouter(
	secureGroup *echo.Group,
	loanService services.LoanServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	loanCtrl := controllers.NewLoanController(loanService, logger)

	loans := secureGroup.Group("/loan")

	loans.GET("", loanCtrl.GetLoans, authMW.AuthorizeAny(authz.LoansView))
	loans.GET("/:id", loanCtrl.FindLoan, authMW.AuthorizeAny(authz.LoansView))
	loans.POST("", loanCtrl.CreateLoan, authMW.AuthorizeAny(authz.LoansCreate))

	// Жизненный цикл заявки. Сервис дополнительно проверяет статусные переходы.
	loans.POST("/:id/approve", loanCtrl.ApproveLoan, authMW.AuthorizeAny(authz.LoansApprove))
	loans.POST("/:id/reject", loanCtrl.RejectLoan, authMW.AuthorizeAny(authz.LoansApprove))
	loans.POST("/:id/checkout", loanCtrl.CheckoutLoan, authMW.AuthorizeAny(authz.LoansCheckout))
	loans.POST("/:id/return", loanCtrl.ReturnLoan, authMW.AuthorizeAny(authz.LoansReturn))
	loans.POST("/:id/cancel", loanCtrl.CancelLoan, authMW.AuthorizeAny(authz.LoansUpdate, authz.LoansCreate))
}
