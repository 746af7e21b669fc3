package main

import (
	"context"
	"fmt"
	"time"

	"productstore/internal/config"
	"productstore/internal/database"
	"productstore/internal/repositories"

	"github.com/rs/zerolog"
)

const connectCheckTimeout = 10 * time.Second

// productStore is the repository together with its connection lifecycle.
type productStore struct {
	repo  repositories.ProductRepository
	close func(ctx context.Context) error
	// checkConnection runs once after the server starts listening.
	checkConnection func(ctx context.Context) error
}

func openStore(cfg config.Config, log *zerolog.Logger) (*productStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongoStore(cfg)
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.StoreDriver, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, err
		}
		repo := repositories.NewGORMProductRepository(db)
		if err := repo.Migrate(); err != nil {
			database.CloseGORM(db)
			return nil, err
		}
		return &productStore{
			repo:            repo,
			close:           func(context.Context) error { return database.CloseGORM(db) },
			checkConnection: repo.Ping,
		}, nil
	default:
		repo := repositories.NewMockProductRepository()
		return &productStore{
			repo:            repo,
			close:           func(context.Context) error { return nil },
			checkConnection: repo.Ping,
		}, nil
	}
}

func openMongoStore(cfg config.Config) (*productStore, error) {
	name, err := database.MongoDatabaseName(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	client, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	return &productStore{
		repo:  repositories.NewMongoProductRepository(client.Database(name)),
		close: client.Disconnect,
		checkConnection: func(ctx context.Context) error {
			if err := client.Ping(ctx, nil); err != nil {
				return fmt.Errorf("failed to reach MongoDB database %s: %w", name, err)
			}
			return nil
		},
	}, nil
}

// verifyConnection checks the store in the background and exits the process
// if it cannot be reached at boot.
func verifyConnection(store *productStore, driver string, log *zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), connectCheckTimeout)
	defer cancel()

	if err := store.checkConnection(ctx); err != nil {
		log.Fatal().Err(err).Str("driver", driver).Msg("store connection failed")
	}
	log.Info().Str("driver", driver).Msg("store connected")
}
