// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server binary's settings. The parsing engine itself
// takes no configuration.
type Config struct {
	Addr        string
	MaxUploadMB int
	LogLevel    slog.Level
}

// Load reads the environment. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getEnv("CAS_ADDR", ":8080"),
		MaxUploadMB: getEnvInt("CAS_MAX_UPLOAD_MB", 50),
		LogLevel:    parseLevel(getEnv("CAS_LOG_LEVEL", "info")),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
