package middleware

import (
	"time"

	"clothing-shop-api/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs every request with a request ID, echoing the ID back
// in the X-Request-ID header.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int("status", c.Response().Status),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("ip", c.RealIP()),
				zap.Duration("latency", time.Since(start)),
			}

			switch {
			case c.Response().Status >= 500:
				logger.Log.Error("server error", fields...)
			case c.Response().Status >= 400:
				logger.Log.Warn("client error", fields...)
			default:
				logger.Log.Info("request", fields...)
			}

			return nil
		}
	}
}
