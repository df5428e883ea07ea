// pkg/middleware/logger.go

package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InjectLogger кладет в контекст запроса логгер, обогащенный методом и
// путем запроса. Обработчики достают его через c.Get("logger").
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestLogger := logger.With(
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
			)
			c.Set("logger", requestLogger)
			return next(c)
		}
	}
}
