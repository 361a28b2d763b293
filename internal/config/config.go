package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads a local .env file when present. Variables already set in the
// process environment are not overridden.
func LoadEnv(log logrus.FieldLogger) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil && log != nil {
		log.WithError(err).Warn("failed to load .env")
	}
}

// GetEnv gets an environment variable with a default value.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt gets an integer environment variable with a default value.
func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// GetEnvDuration gets a duration environment variable ("5m", "30s") with a
// default value.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
