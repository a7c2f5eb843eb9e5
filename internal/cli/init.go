// Package cli provides process bootstrap helpers and the interactive menu.
package cli

import (
	"context"
	"os"

	"expenses/internal/backend"
	"expenses/internal/config"
	"expenses/internal/log"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads the .env file for local use.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Logs go to stderr.
func SetupLogger(cfg *config.Config) *log.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration, applies overrides (command-line
// flags) and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore opens the configured store. Failure here is fatal to the caller:
// nothing works without storage.
func OpenStore(ctx context.Context, logger *log.Logger, cfg *config.Config) (backend.Store, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	store, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).Create(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to open store",
			log.FieldBackend, cfg.DataBackend,
			log.FieldDBPath, cfg.SQLiteDBPath,
			log.FieldError, err)
		return nil, err
	}
	return store, nil
}
