package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the process settings.
type Config struct {
	Port            int
	Environment     string
	LogLevel        string
	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	DatabaseDSN     string
	RabbitMQURL     string
	RabbitMQConsume bool
	ShutdownTimeout time.Duration
}

// ListenAddr returns the address Fiber listens on.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// EventsEnabled reports whether product events should be published.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads the optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("PORT", 5001)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/productstore")
	v.SetDefault("MONGO_DATABASE", "")
	v.SetDefault("DATABASE_DSN", "file:productstore.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_CONSUME", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	port, err := parsePort(v.GetString("PORT"))
	if err != nil {
		return Config{}, err
	}

	timeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v.GetString("SHUTDOWN_TIMEOUT"), err)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case DriverMongo, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	return Config{
		Port:            port,
		Environment:     v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		StoreDriver:     driver,
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RabbitMQConsume: v.GetBool("RABBITMQ_CONSUME"),
		ShutdownTimeout: timeout,
	}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("PORT %d out of range", port)
	}
	return port, nil
}
