package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/logx"
)

// X-Request-IDを付けて1リクエスト1行でログを出す
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			err := next(c)
			if err != nil {
				//echoのエラーハンドラに書き込ませてからステータスを読む
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			ev := logx.Info()
			if status >= 500 {
				ev = logx.Error()
			}
			ev.Str("request_id", reqID).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Err(err).
				Msg("request")

			return nil
		}
	}
}
