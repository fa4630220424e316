package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/shelf/internal/config"
)

// SQLitePath returns the database path inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, StorageKey+".db")
}

// Open opens the backend selected in cfg.
// With no explicit backend, SQLite is preferred if its database file exists,
// otherwise JSON is used.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONStorage(cfg.DataDir), nil
	case config.BackendSQLite:
		return NewSQLiteStorage(SQLitePath(cfg.DataDir))
	case config.BackendRedis:
		return NewRedisStorage(RedisParams{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), nil
	case config.BackendAuto:
		if _, err := os.Stat(SQLitePath(cfg.DataDir)); err == nil {
			return NewSQLiteStorage(SQLitePath(cfg.DataDir))
		}
		return NewJSONStorage(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
