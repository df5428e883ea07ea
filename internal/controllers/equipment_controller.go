package controllers

import (
	"net/http"
	"strconv"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/entities"
	"fleet-dashboard/internal/services"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EquipmentController принимает мутации записей. Разрушительные действия
// требуют явного подтверждения флагом confirm=true.
type EquipmentController struct {
	sessionManager  *services.SessionManager
	mutationService services.MutationServiceInterface
	logger          *zap.Logger
}

func NewEquipmentController(
	sessionManager *services.SessionManager,
	mutationService services.MutationServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		sessionManager:  sessionManager,
		mutationService: mutationService,
		logger:          logger,
	}
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var form dto.EquipmentFormDTO
	if err := ctx.Bind(&form); err != nil {
		c.logger.Error("CreateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := c.mutationService.Create(ctx.Request().Context(), session.Dashboard, form); err != nil {
		c.logger.Error("CreateEquipment: ошибка при создании записи", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Запись успешно создана", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	siNo, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Error("UpdateEquipment: неверный формат SI No", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат SI No",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	var form dto.EquipmentFormDTO
	if err := ctx.Bind(&form); err != nil {
		c.logger.Error("UpdateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := c.mutationService.Update(ctx.Request().Context(), session.Dashboard, siNo, form); err != nil {
		c.logger.Error("UpdateEquipment: ошибка при обновлении записи", zap.Int64("siNo", siNo), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Запись успешно обновлена", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	siNo, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Error("DeleteEquipment: неверный формат SI No", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат SI No",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	confirmed := isConfirmed(ctx)
	if err := c.mutationService.Delete(ctx.Request().Context(), session.Dashboard, siNo, confirmed); err != nil {
		c.logger.Error("DeleteEquipment: ошибка при удалении записи", zap.Int64("siNo", siNo), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Запись успешно удалена", http.StatusOK)
}

func (c *EquipmentController) BulkDelete(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	confirmed := isConfirmed(ctx)
	if err := c.mutationService.BulkDelete(ctx.Request().Context(), session.Dashboard, confirmed); err != nil {
		c.logger.Error("BulkDelete: ошибка массового удаления", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Выбранные записи удалены", http.StatusOK)
}

func (c *EquipmentController) BulkUpdateStatus(ctx echo.Context) error {
	session, err := resolveSession(ctx, c.sessionManager)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.BulkStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("BulkUpdateStatus: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	confirmed := isConfirmed(ctx)
	err = c.mutationService.BulkUpdateStatus(
		ctx.Request().Context(),
		session.Dashboard,
		entities.StatusField(payload.Field),
		payload.Value,
		confirmed,
	)
	if err != nil {
		c.logger.Error("BulkUpdateStatus: ошибка массового обновления", zap.String("field", payload.Field), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session.NotifyStateChanged()
	return utils.SuccessResponse(ctx, session.Dashboard.State(), "Отметки выбранных записей обновлены", http.StatusOK)
}

// isConfirmed — подтверждение разрушительного действия, полученное от
// пользователя на стороне представления.
func isConfirmed(ctx echo.Context) bool {
	confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm"))
	return confirmed
}
