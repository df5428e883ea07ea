package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "fleet-dashboard/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	response := &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(code, response)
}

// ErrorResponse превращает ошибку в JSON-ответ. Наружу уходит только
// человекочитаемое сообщение, детали остаются в логах.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, &HTTPResponse{
			Status:  false,
			Message: httpErr.Message,
		})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: invalidInput.Message,
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	if code, ok := statusByError(err); ok {
		return c.JSON(code, &HTTPResponse{Status: false, Message: err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "Внутренняя ошибка сервера",
	})
}

func statusByError(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrInvalidSigningMethod):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrSessionIDNotFoundInContext):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		return http.StatusConflict, true
	case errors.Is(err, apperrors.ErrNothingSelected),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrFormNotOpen):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}
