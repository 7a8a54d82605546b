package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-system/internal/repositories"
	"lending-system/internal/services"
	"lending-system/pkg/config"
	"lending-system/pkg/discord"
	"lending-system/pkg/filestorage"
	"lending-system/pkg/middleware"
	"lending-system/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Loan      *zap.Logger
	User      *zap.Logger
	Analytics *zap.Logger
}

// InitRouter собирает все зависимости и регистрирует маршруты.
// Возвращает свипер просрочек, чтобы main мог запустить его в отдельной горутине.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, authPermissionService services.AuthPermissionServiceInterface, cfg *config.Config) services.OverdueSweeperInterface {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, loggers.Auth)
	fileStorage, err := filestorage.NewLocalFileStorage("uploads")
	if err != nil {
		loggers.Main.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	desk, err := services.NewDeskSchedule(cfg.Lending)
	if err != nil {
		loggers.Main.Fatal("некорректное расписание пункта выдачи", zap.Error(err))
	}

	discordSvc := discord.NewService(cfg.Discord.WebhookURL)
	notifier := services.NewNotificationService(discordSvc, cfg.Discord.WebhookURL != "", loggers.Main)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	roleRepo := repositories.NewRoleRepository(dbConn)
	permissionRepo := repositories.NewPermissionRepository(dbConn, loggers.Main)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, loggers.Main)
	categoryRepo := repositories.NewEquipmentCategoryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	loanRepo := repositories.NewLoanRepository(dbConn, loggers.Loan)
	reservationRepo := repositories.NewReservationRepository(dbConn, loggers.Loan)
	analyticsRepo := repositories.NewAnalyticsRepository(dbConn, loggers.Analytics)
	alertRepo := repositories.NewAlertRepository(dbConn, loggers.Main)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Analytics)
	reportRepo := repositories.NewReportRepository(dbConn, loggers.Analytics)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, authPermissionService, jwtSvc, loggers.Auth)
	userService := services.NewUserService(userRepo, authPermissionService, loggers.User)
	roleService := services.NewRoleService(txManager, roleRepo, authPermissionService, loggers.Main)
	permissionService := services.NewPermissionService(permissionRepo)
	departmentService := services.NewDepartmentService(departmentRepo, loggers.Main)
	categoryService := services.NewEquipmentCategoryService(categoryRepo, loggers.Main)
	equipmentService := services.NewEquipmentService(equipmentRepo, loanRepo, categoryRepo, loggers.Main)
	reliabilityService := services.NewReliabilityService(analyticsRepo, loanRepo, cfg.Lending, loggers.Analytics)
	loanService := services.NewLoanService(txManager, loanRepo, equipmentRepo, userRepo, reservationRepo, desk, notifier, reliabilityService, loggers.Loan)
	reservationService := services.NewReservationService(reservationRepo, equipmentRepo, userRepo, loggers.Loan)
	usageService := services.NewUsageAnalyzerService(analyticsRepo, loanRepo, equipmentRepo, cfg.Lending, loggers.Analytics)
	alertService := services.NewAlertService(alertRepo, loggers.Main)
	dashboardService := services.NewDashboardService(dashboardRepo, loggers.Analytics)
	publicStatsService := services.NewPublicStatsService(dashboardRepo, cacheRepo, cfg.Lending.PublicStatsCacheTTL, loggers.Analytics)
	reportService := services.NewReportService(reportRepo, userRepo, loggers.Analytics)
	sweeper := services.NewOverdueSweeper(txManager, loanRepo, equipmentRepo, alertRepo, notifier, cfg.Lending.OverdueSweepInterval, cfg.Lending.NoShowGrace, loggers.Loan)

	// --- 3. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, loggers.Auth, authMW)
	runDashboardRouter(api, secureGroup, dashboardService, publicStatsService, loggers.Analytics, authMW)

	runUserRouter(secureGroup, userService, loggers.User, authMW)
	runRoleRouter(secureGroup, roleService, loggers.Main, authMW)
	runPermissionRouter(secureGroup, permissionService, loggers.Main, authMW)
	runDepartmentRouter(secureGroup, departmentService, loggers.Main, authMW)
	runEquipmentCategoryRouter(secureGroup, categoryService, loggers.Main, authMW)
	runEquipmentRouter(secureGroup, equipmentService, loggers.Main, authMW)
	runLoanRouter(secureGroup, loanService, loggers.Loan, authMW)
	runReservationRouter(secureGroup, reservationService, loggers.Loan, authMW)
	runAnalyticsRouter(secureGroup, usageService, reliabilityService, loggers.Analytics, authMW)
	runAlertRouter(secureGroup, alertService, loggers.Main, authMW)
	runReportRouter(secureGroup, reportService, loggers.Analytics, authMW)
	runUploadRouter(secureGroup, fileStorage, equipmentService, loggers.Main, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
	return sweeper
}
