// Package server assembles the Fiber application.
package server

import (
	"errors"
	"fmt"

	"productstore/internal/handlers"
	"productstore/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds the app: middleware, /api/products and /health.
func New(log *zerolog.Logger, products *handlers.ProductHandler, health *handlers.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productstore",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: middleware.RequestIDKey,
	}))
	app.Use(middleware.RequestLogger(log))

	api := app.Group("/api")
	products.RegisterRoutes(api)
	health.RegisterRoutes(app)

	return app
}

// errorHandler answers in the same {success, message} shape as the handlers.
// Unexpected errors are logged and reported as a generic server error.
func errorHandler(log *zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			message := fe.Message
			if fe.Code == fiber.StatusNotFound {
				message = fmt.Sprintf("Cannot %s %s", c.Method(), c.Path())
			}
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server Error",
		})
	}
}
