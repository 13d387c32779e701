package envconfig

import (
	"strconv"
	"time"

	"github.com/khendev23/gap-cafe-type/pkg/database"
)

// LoadDatabaseConfig loads one pool's configuration from environment
// variables carrying the given suffix, e.g. suffix "PRIMARY" reads
// DB_HOST_PRIMARY, DB_PORT_PRIMARY and so on. The primary/secondary split
// mirrors the two backing stores the kiosk deployment points at.
func LoadDatabaseConfig(suffix string) database.Config {
	config := database.DefaultConfig()

	key := func(base string) string { return base + "_" + suffix }

	if host := GetEnv(key("DB_HOST"), ""); host != "" {
		config.Host = host
	}

	if portStr := GetEnv(key("DB_PORT"), ""); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}

	if user := GetEnv(key("DB_USER"), ""); user != "" {
		config.User = user
	}

	if password := GetEnv(key("DB_PASSWORD"), ""); password != "" {
		config.Password = password
	}

	if dbname := GetEnv(key("DB_DATABASE"), ""); dbname != "" {
		config.DBName = dbname
	}

	if sslmode := GetEnv(key("DB_SSL_MODE"), ""); sslmode != "" {
		config.SSLMode = sslmode
	}

	// Pool settings are shared across both targets
	if maxOpenStr := GetEnv("DB_MAX_OPEN_CONNS", ""); maxOpenStr != "" {
		if maxOpen, err := strconv.Atoi(maxOpenStr); err == nil && maxOpen > 0 {
			config.MaxOpenConns = maxOpen
		}
	}

	if maxIdleStr := GetEnv("DB_MAX_IDLE_CONNS", ""); maxIdleStr != "" {
		if maxIdle, err := strconv.Atoi(maxIdleStr); err == nil && maxIdle > 0 {
			config.MaxIdleConns = maxIdle
		}
	}

	if lifetimeStr := GetEnv("DB_CONN_MAX_LIFETIME", ""); lifetimeStr != "" {
		if lifetime, err := time.ParseDuration(lifetimeStr); err == nil {
			config.ConnMaxLifetime = lifetime
		}
	}

	if idleTimeStr := GetEnv("DB_CONN_MAX_IDLE_TIME", ""); idleTimeStr != "" {
		if idleTime, err := time.ParseDuration(idleTimeStr); err == nil {
			config.ConnMaxIdleTime = idleTime
		}
	}

	return config
}
