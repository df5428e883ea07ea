package controllers

import (
	"net/http"

	"fleet-dashboard/internal/services"
	"fleet-dashboard/pkg/service"
	appwebsocket "fleet-dashboard/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController подключает вкладку браузера к потоку уведомлений
// её сессии. Токен передается query-параметром: браузер не умеет
// выставлять заголовки при открытии WebSocket.
type WebSocketController struct {
	hub            *appwebsocket.Hub
	jwtService     service.JWTService
	sessionManager *services.SessionManager
	logger         *zap.Logger
}

func NewWebSocketController(
	hub *appwebsocket.Hub,
	jwtService service.JWTService,
	sessionManager *services.SessionManager,
	logger *zap.Logger,
) *WebSocketController {
	return &WebSocketController{
		hub:            hub,
		jwtService:     jwtService,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return ctx.String(http.StatusUnauthorized, "Missing token")
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return ctx.String(http.StatusUnauthorized, "Invalid token")
	}
	if _, err := c.sessionManager.Get(claims.SessionID); err != nil {
		return ctx.String(http.StatusUnauthorized, "Unknown session")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.SessionID, c.logger)
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: клиент успешно подключен", zap.String("sessionID", claims.SessionID))
	return nil
}
