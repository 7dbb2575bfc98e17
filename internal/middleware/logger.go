package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		ctx := c.Request().Context()

		logger := log.With().Str("request_id", requestID).Logger()
		ctx = logger.WithContext(ctx)

		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)

		latency := time.Since(start).Milliseconds()

		req := c.Request()
		res := c.Response()

		event := log.Ctx(c.Request().Context()).Info()
		if res.Status >= http.StatusInternalServerError {
			event = log.Ctx(c.Request().Context()).Error()
		}
		event.
			Str("method", req.Method).
			Str("endpoint", req.URL.Path).
			Str("route", c.Path()).
			Int("status", res.Status).
			Int64("latency", latency).
			Msg("Request processed")

		return err
	}
}
