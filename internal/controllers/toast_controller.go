package controllers

import (
	"net/http"
	"strconv"

	"fleet-dashboard/internal/services"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ToastController struct {
	sessionManager *services.SessionManager
	logger         *zap.Logger
}

func NewToastController(sessionManager *services.SessionManager, logger *zap.Logger) *ToastController {
	return &ToastController{
		sessionManager: sessionManager,
		logger:         logger,
	}
}

func (c *ToastController) ListToasts(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, session.Toasts.List(), "Активные уведомления", http.StatusOK)
}

func (c *ToastController) DismissToast(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID уведомления",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	session.Toasts.Dismiss(id)
	return utils.SuccessResponse(ctx, struct{}{}, "Уведомление закрыто", http.StatusOK)
}
