package config

import (
	"log/slog"
	"os"
	"strings"
)

// Backend names for STORAGE_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	DataDir string // Directory holding catalog JSON files
	Catalog string // Catalog file to play, relative to DataDir

	StorageBackend string // "file" or "redis"
	SaveDir        string // File backend: save directory
	RedisURL       string // Redis backend: host:port
}

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:        getEnv("DATA_DIR", "./data/catalogs"),
		Catalog:        getEnv("CATALOG", "ward701.json"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		SaveDir:        getEnv("SAVE_DIR", "./saves"),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
