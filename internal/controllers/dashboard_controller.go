package controllers

import (
	"net/http"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/services"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardController отдает состояние дашборда и принимает действия
// представления: переключение листа, поиск, страницы, выделение, форма.
type DashboardController struct {
	sessionManager *services.SessionManager
	logger         *zap.Logger
}

func NewDashboardController(sessionManager *services.SessionManager, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// GetState — снимок состояния для отрисовки страницы.
func (c *DashboardController) GetState(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Состояние дашборда", http.StatusOK)
}

func (c *DashboardController) SetSheet(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetSheetDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("SetSheet: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.Dashboard.SetSheet(ctx.Request().Context(), payload.Sheet)
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Лист переключен", http.StatusOK)
}

func (c *DashboardController) SetSearch(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetSearchDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("SetSearch: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	session.Dashboard.SetSearch(payload.Query)
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Строка поиска обновлена", http.StatusOK)
}

func (c *DashboardController) SetPage(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SetPageDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("SetPage: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	// Границы страниц контроллер состояния не проверяет: кнопки
	// навигации на границах выключены на стороне представления.
	session.Dashboard.SetPage(payload.Page)
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Страница переключена", http.StatusOK)
}

func (c *DashboardController) Refresh(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.Dashboard.Refresh(ctx.Request().Context())
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Данные перезагружены", http.StatusOK)
}

func (c *DashboardController) SelectItem(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SelectItemDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("SelectItem: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.Dashboard.ToggleSelect(payload.SINo, payload.Selected)
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Выделение обновлено", http.StatusOK)
}

func (c *DashboardController) SelectAll(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SelectAllDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("SelectAll: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	session.Dashboard.ToggleSelectAllOnPage(payload.Selected)
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Выделение страницы обновлено", http.StatusOK)
}

func (c *DashboardController) ClearSelection(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.Dashboard.ClearSelection()
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Выделение снято", http.StatusOK)
}

func (c *DashboardController) OpenForm(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.OpenFormDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("OpenForm: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := session.Dashboard.OpenForm(payload.SINo); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusNotFound, "Запись для редактирования не найдена", err, nil),
			c.logger,
		)
	}
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Форма открыта", http.StatusOK)
}

func (c *DashboardController) CloseForm(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.Dashboard.CloseForm()
	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Форма закрыта", http.StatusOK)
}
