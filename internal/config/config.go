// Package config holds runtime configuration for the spatialvid CLI.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values.
type Config struct {
	// Hugging Face hub
	HubEndpoint string
	HubToken    string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HubEndpoint: getEnv("SPATIALVID_HF_ENDPOINT", "https://huggingface.co"),
		HubToken:    getEnv("SPATIALVID_HF_TOKEN", ""),

		LogFile:  getEnv("SPATIALVID_LOG_FILE", "/tmp/spatialvid.log"),
		LogLevel: parseLogLevel(getEnv("SPATIALVID_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
