package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
)

var (
	_ Store = (*storage.SQLiteRepository)(nil)
	_ Store = (*memory.Store)(nil)
)

// Factory creates stores based on configuration
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create opens the store described by cfg. The caller owns the returned
// store and must Close it.
func (f *Factory) Create(_ context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLite(cfg)
	case MemoryBackend:
		return f.createMemory(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *Factory) createSQLite(cfg Config) (Store, error) {
	var opts []storage.Option
	if cfg.CategoryCacheSize > 0 {
		opts = append(opts, storage.WithCategoryCacheSize(cfg.CategoryCacheSize))
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", log.FieldDBPath, cfg.SQLiteDBPath)
	return repo, nil
}

func (f *Factory) createMemory(cfg Config) Store {
	store := memory.NewFromFile(cfg.SeedCategoriesFile)
	f.logger.Info("Initialized memory backend", log.FieldSeedFile, cfg.SeedCategoriesFile)
	return store
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:               t,
		SQLiteDBPath:       appConfig.SQLiteDBPath,
		CategoryCacheSize:  appConfig.CategoryCacheSize,
		SeedCategoriesFile: appConfig.SeedCategoriesFile,
	}, nil
}
