// Файл: main.go

package main

import (
	"log"
	"net/http"

	"fleet-dashboard/internal/routes"
	"fleet-dashboard/pkg/config"
	"fleet-dashboard/pkg/customvalidator"
	apperrors "fleet-dashboard/pkg/errors"
	applogger "fleet-dashboard/pkg/logger"
	appmiddleware "fleet-dashboard/pkg/middleware"
	"fleet-dashboard/pkg/service"
	"fleet-dashboard/pkg/utils"
	appwebsocket "fleet-dashboard/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	// 1. СНАЧАЛА создаем базовые экземпляры Echo и логгера
	e := echo.New()
	logger := applogger.NewLogger()

	// 2. Инициализируем конфиг
	cfg := config.New()
	if cfg.SheetsAPI.URL == "" {
		logger.Fatal("SHEETS_API_URL не задан: сервису некуда ходить за данными")
	}

	// 3. ПОСЛЕ этого настраиваем middleware, так как они используют logger и echo
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

	e.Use(appmiddleware.InjectLogger(logger))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			allowedOrigins := []string{
				"http://localhost:5173",
			}
			for _, o := range allowedOrigins {
				if origin == o {
					return true, nil
				}
			}
			return false, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	// 4. Инициализация валидатора с кастомными правилами
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 5. Инициализируем сервисы
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTokenTTL)

	hub := appwebsocket.NewHub(logger)
	go hub.Run()

	// 6. Инициализируем роуты
	routes.InitRouter(e, jwtSvc, hub, logger, cfg)

	// 7. Запускаем сервер
	logger.Info("🚀 Сервер запущен на :" + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
