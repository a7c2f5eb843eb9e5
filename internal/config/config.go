package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Database
	SQLiteDBPath string

	// Backend selection
	DataBackend string

	// Memory backend seed
	SeedCategoriesFile string

	// Display
	CurrencySymbol string

	// Storage
	CategoryCacheSize int

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		SQLiteDBPath: getEnv("EXPENSES_DB_PATH", "expenses.db"),

		DataBackend:        getEnv("DATA_BACKEND", "sqlite"),
		SeedCategoriesFile: getEnv("SEED_CATEGORIES_FILE", ""),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		CategoryCacheSize: getEnvInt("CATEGORY_CACHE_SIZE", 256),

		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if c.SQLiteDBPath == ":memory:" || strings.HasPrefix(c.SQLiteDBPath, "file::memory:") {
			errors = append(errors, "in-memory SQLite is not supported: use DATA_BACKEND=memory instead")
		} else if strings.ContainsAny(c.SQLiteDBPath, "?#") {
			errors = append(errors, fmt.Sprintf("SQLite database path '%s' must not contain '?' or '#'", c.SQLiteDBPath))
		} else if info, err := os.Stat(c.SQLiteDBPath); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("SQLite database path '%s' is a directory", c.SQLiteDBPath))
		}
	}

	if c.DataBackend == "memory" && c.SeedCategoriesFile != "" {
		if _, err := os.Stat(c.SeedCategoriesFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("seed categories file does not exist: %s", filepath.Clean(c.SeedCategoriesFile)))
		}
	}

	if c.CategoryCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid category cache size %d: must be at least 1", c.CategoryCacheSize))
	} else if c.CategoryCacheSize > 100000 {
		errors = append(errors, fmt.Sprintf("invalid category cache size %d: must be at most 100000", c.CategoryCacheSize))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", s)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
