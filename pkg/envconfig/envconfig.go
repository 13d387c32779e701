package envconfig

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// LoadEnvFile loads environment variables from the given .env file. Missing
// files are not fatal; callers log and continue with the process environment.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// GetEnv returns the value of the environment variable or the fallback when
// it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetLogLevel reads LOG_LEVEL and maps it onto the logger's level type.
func GetLogLevel() logger.LogLevel {
	switch GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// IsProduction reports whether the process runs in production mode. In
// production every request is served from the primary database pool.
func IsProduction() bool {
	return GetEnv("ENVIRONMENT", "development") == "production"
}
