package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Logger   LoggerConfig
	Slot     SlotConfig
	Database DatabaseConfig
	GRPC     GRPCConfig
	HTTP     HTTPConfig
}

type LoggerConfig struct {
	Env string
}

type SlotConfig struct {
	Backend    string
	Key        string
	Dir        string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Name     string
	User     string
	Password string
	Port     int
}

type GRPCConfig struct {
	Port           int
	WatchHeartbeat time.Duration
}

type HTTPConfig struct {
	Port int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &Config{
		Logger: LoggerConfig{
			Env: getEnv("LOGGER_ENV", "development"),
		},
		Slot: SlotConfig{
			Backend:    getEnv("SLOT_BACKEND", BackendFile),
			Key:        getEnv("SLOT_KEY", "konig_tasks_v1"),
			Dir:        getEnv("SLOT_DIR", ".tracker"),
			SQLitePath: getEnv("SQLITE_PATH", ".tracker/tracker.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Name:     getEnv("POSTGRES_DB", "task_tracker"),
			User:     getEnv("POSTGRES_USER", "task_tracker"),
			Password: getEnv("POSTGRES_PASSWORD", "task_tracker"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
		},
		GRPC: GRPCConfig{
			Port:           getEnvInt("GRPC_PORT", 50051),
			WatchHeartbeat: getEnvDuration("WATCH_HEARTBEAT", time.Minute),
		},
		HTTP: HTTPConfig{
			Port: getEnvInt("HTTP_PORT", 8080),
		},
	}, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
