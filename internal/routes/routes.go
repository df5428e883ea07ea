package routes

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fleet-dashboard/internal/controllers"
	"fleet-dashboard/internal/repositories"
	"fleet-dashboard/internal/services"
	"fleet-dashboard/pkg/config"
	"fleet-dashboard/pkg/middleware"
	"fleet-dashboard/pkg/service"
	appwebsocket "fleet-dashboard/pkg/websocket"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
func InitRouter(e *echo.Echo, jwtSvc service.JWTService, hub *appwebsocket.Hub, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	equipmentRepo := repositories.NewSheetsEquipmentRepository(cfg.SheetsAPI.URL, nil, logger)

	// --- 2. СЕРВИСЫ ---
	sessionManager := services.NewSessionManager(equipmentRepo, jwtSvc, hub, cfg.Dashboard, logger)
	sessionManager.StartJanitor(context.Background(), time.Minute)
	mutationService := services.NewMutationService(equipmentRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	sessionController := controllers.NewSessionController(sessionManager, logger)
	dashboardController := controllers.NewDashboardController(sessionManager, logger)
	equipmentController := controllers.NewEquipmentController(sessionManager, mutationService, logger)
	toastController := controllers.NewToastController(sessionManager, logger)
	exportController := controllers.NewExportController(sessionManager, logger)
	wsController := controllers.NewWebSocketController(hub, jwtSvc, sessionManager, logger)

	// --- 4. РОУТЕРЫ ---
	api.POST("/session", sessionController.CreateSession)
	e.GET("/ws", wsController.ServeWs)

	secureGroup := api.Group("", authMW.Auth)
	runDashboardRouter(secureGroup, dashboardController)
	runEquipmentRouter(secureGroup, equipmentController)
	runToastRouter(secureGroup, toastController)
	runExportRouter(secureGroup, exportController)

	logger.Info("InitRouter: Маршруты созданы")
}
