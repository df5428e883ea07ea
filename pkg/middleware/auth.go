package middleware

import (
	"context"
	"strings"

	"fleet-dashboard/pkg/contextkeys"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/service"
	"fleet-dashboard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth - это основная функция middleware: достает токен сессии из
// заголовка и кладет SessionID в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx := c.Request().Context()
		newCtx := context.WithValue(ctx, contextkeys.SessionIDKey, claims.SessionID)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}

// SessionIDFromContext достает ID сессии, положенный middleware Auth.
func SessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(contextkeys.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", apperrors.ErrSessionIDNotFoundInContext
	}
	return sessionID, nil
}
