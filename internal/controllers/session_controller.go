package controllers

import (
	"net/http"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/services"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/middleware"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SessionController struct {
	sessionManager *services.SessionManager
	logger         *zap.Logger
}

func NewSessionController(sessionManager *services.SessionManager, logger *zap.Logger) *SessionController {
	return &SessionController{
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// CreateSession открывает новую сессию дашборда и возвращает токен.
// Начальная загрузка листов и данных стартует в фоне.
func (c *SessionController) CreateSession(ctx echo.Context) error {
	token, err := c.sessionManager.CreateSession(ctx.Request().Context())
	if err != nil {
		c.logger.Error("CreateSession: ошибка создания сессии", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusInternalServerError,
				"Не удалось создать сессию",
				err,
				nil,
			),
			c.logger,
		)
	}

	return utils.SuccessResponse(ctx, dto.SessionDTO{Token: token}, "Сессия успешно создана", http.StatusCreated)
}

// resolveSession достает сессию текущего запроса: ID кладет в контекст
// middleware Auth, живую сессию выдает менеджер.
func resolveSession(ctx echo.Context, manager *services.SessionManager) (*services.Session, error) {
	sessionID, err := middleware.SessionIDFromContext(ctx.Request().Context())
	if err != nil {
		return nil, err
	}
	return manager.Get(sessionID)
}
