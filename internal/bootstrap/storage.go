package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
	pgadapter "github.com/Kabuna254/Job-App/internal/adapters/postgres"
	redisadapter "github.com/Kabuna254/Job-App/internal/adapters/redis"
	"github.com/Kabuna254/Job-App/internal/adapters/sqlite"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// Storage is the client state backend selected by STORAGE_BACKEND.
type Storage struct {
	Backend config.StorageBackend
	KV      ports.KVStore
	Guard   ports.SubmissionGuard
	// Purger is nil for backends that expire keys on their own.
	Purger ports.StatePurger

	closers []func() error
}

// Close releases every connection the storage opened.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StorageDeps groups inputs for OpenStorage.
type StorageDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// OpenStorage connects the configured backend. Postgres runs migrations when
// DB_RUN_MIGRATIONS_ON_START is set; SQLite always ensures its schema.
func OpenStorage(ctx context.Context, deps StorageDeps) (*Storage, error) {
	if deps.Config == nil {
		return nil, errors.New("storage config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	st := &Storage{Backend: cfg.Storage.Backend}

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := ConnectRedis(DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, client.Close)
		st.KV, st.Guard = redisBackend(client, cfg.Storage, logger)

	case config.StoragePostgres:
		db, err := ConnectDB(DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)
		if err := postgresBackend(ctx, st, db, cfg, logger); err != nil {
			return nil, errors.Join(err, st.Close())
		}

	case config.StorageSQLite:
		kv, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, sqlite.Options{TTL: cfg.Storage.TTL})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.InfoContext(ctx, "sqlite client state opened", "path", cfg.Storage.SQLitePath)
		st.closers = append(st.closers, kv.Close)
		st.KV, st.Purger, st.Guard = kv, kv, kvstore.NewGuard()

	default:
		st.KV, st.Guard = kvstore.NewMemory(cfg.Storage.TTL), kvstore.NewGuard()
		logger.WarnContext(ctx, "client state kept in memory; sessions are lost on restart")
	}

	return st, nil
}

//nolint:ireturn // both values are selected per backend behind ports.
func redisBackend(client redis.UniversalClient, cfg config.StorageConfig, logger *slog.Logger) (ports.KVStore, ports.SubmissionGuard) {
	kv := redisadapter.NewKVStore(client, redisadapter.KVStoreOptions{Prefix: cfg.KeyPrefix, TTL: cfg.TTL})
	guard := redisadapter.NewSubmissionGuard(client, cfg.KeyPrefix+"submit:", logger)
	return kv, guard
}

func postgresBackend(ctx context.Context, st *Storage, db *sql.DB, cfg *config.AppConfig, logger *slog.Logger) error {
	if cfg.Postgres.RunMigrationsOnStart {
		if err := RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}
	kv := pgadapter.NewKVStore(db, pgadapter.KVStoreOptions{TTL: cfg.Storage.TTL})
	// Without Redis the submission guard is process-local.
	st.KV, st.Purger, st.Guard = kv, kv, kvstore.NewGuard()
	return nil
}
