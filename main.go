package main

import (
	"context"
	"errors"
	"os"

	"productstore/internal/config"
	"productstore/internal/handlers"
	"productstore/internal/logging"
	"productstore/internal/server"
	"productstore/internal/services"
	"productstore/pkg/rabbitmq"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

func main() {
	// --- Configuration ---
	// Settings come from .env (if present) and the environment.
	cfg, err := config.Load()
	if err != nil {
		logging.New("production", "info").Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.Environment, cfg.LogLevel)

	// --- Store ---
	// The client is constructed here; reachability is checked after the server starts.
	store, err := openStore(cfg, logging.Named(logger, "database"))
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open product store")
	}

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logging.Named(logger, "rabbitmq"))
		if err != nil {
			logger.Warn().Err(err).Msg("product events disabled")
		} else {
			publisher = mqClient
			// Optionally log every product event we publish.
			if cfg.RabbitMQConsume {
				if err := mqClient.Consume(rabbitmq.ActivityLogger(logging.Named(logger, "activity"))); err != nil {
					logger.Warn().Err(err).Msg("failed to start product activity consumer")
				}
			}
		}
	}

	// --- Services and handlers ---
	// ProductService depends on the store's repository and the optional publisher
	productLog := logging.Named(logger, "products")
	productService := services.NewProductService(store.repo, publisher, productLog)
	productHandler := handlers.NewProductHandler(productService, productLog)
	healthHandler := handlers.NewHealthHandler(productService, logging.Named(logger, "health"))

	// --- Fiber App ---
	app := server.New(logging.Named(logger, "http"), productHandler, healthHandler)

	// --- Start HTTP Server ---
	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()
	logger.Info().Msgf("Server started at http://localhost:%d", cfg.Port)

	// Serving does not wait for the store.
	go verifyConnection(store, cfg.StoreDriver, logging.Named(logger, "database"))

	// --- Graceful shutdown ---
	// SIGINT/SIGTERM stop the server first, then the broker and the store.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// One operation so the server drains before its dependencies close.
			"productstore": func(ctx context.Context) error {
				logger.Info().Msg("Shutting down server...")
				var errs []error
				if err := app.ShutdownWithContext(ctx); err != nil {
					errs = append(errs, err)
				}
				if mqClient != nil {
					if err := mqClient.Close(); err != nil {
						errs = append(errs, err)
					}
				}
				if err := store.close(ctx); err != nil {
					errs = append(errs, err)
				}
				return errors.Join(errs...)
			},
		},
	)

	// Wait for the shutdown signal and exit with its code
	exitCode := <-wait
	logger.Info().Int("code", exitCode).Msg("Server stopped")
	os.Exit(exitCode)
}
