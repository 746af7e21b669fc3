package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestIDKey is the Locals key the requestid middleware stores the id under.
const RequestIDKey = "requestid"

// RequestLogger is a Fiber middleware that writes one access log line per request.
func RequestLogger(log *zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		// The error handler has not run yet, so derive the status it will write.
		status := c.Response().StatusCode()
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			if e, ok := chainErr.(*fiber.Error); ok {
				status = e.Code
			}
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}

		requestID, _ := c.Locals(RequestIDKey).(string)
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID).
			Msg("request")

		return chainErr
	}
}
