package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lending-system/internal/repositories"
	"lending-system/internal/routes"
	"lending-system/internal/services"
	"lending-system/pkg/config"
	"lending-system/pkg/customvalidator"
	"lending-system/pkg/database/postgresql"
	apperrors "lending-system/pkg/errors"
	applogger "lending-system/pkg/logger"
	appmw "lending-system/pkg/middleware"
	"lending-system/pkg/service"
	"lending-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Базовые экземпляры Echo и логгера
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	// 2. Конфигурация (.env подхватывается внутри config.New)
	cfg := config.New()

	// 3. Middleware: восстановление после паник и CORS
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(appmw.InjectLogger(logger))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	// 4. Статика для загруженных изображений
	absPath, err := filepath.Abs("./uploads")
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	// 5. Валидатор с кастомными правилами
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 6. Подключения к PostgreSQL и Redis
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 7. Общие сервисы
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	permissionRepo := repositories.NewPermissionRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	rolePermissionsCacheTTL := time.Minute * 10
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger, rolePermissionsCacheTTL)

	// 8. Маршруты
	loggers := &routes.Loggers{
		Main:      logger,
		Auth:      applogger.NewNamedLogger(logger, "auth"),
		Loan:      applogger.NewNamedLogger(logger, "loans"),
		User:      applogger.NewNamedLogger(logger, "users"),
		Analytics: applogger.NewNamedLogger(logger, "analytics"),
	}
	sweeper := routes.InitRouter(e, dbConn, redisClient, jwtSvc, loggers, authPermissionService, cfg)

	// 9. Фоновый свипер просрочек и неявок
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sweeper.Start(sweepCtx)

	// 10. Запуск сервера с graceful shutdown
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Остановка сервера...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
}
