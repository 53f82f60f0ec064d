package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/migrate"
)

// connectTimeout bounds the startup ping of each backing store.
const connectTimeout = 5 * time.Second

// DatabaseConfig contains configuration for the client state connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// ConnectDB opens and pings the Postgres database holding client_state.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	pg := cfg.DBConfig
	db, err := sql.Open("pgx", pg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(pg.MaxOpenConns)
	db.SetMaxIdleConns(max(1, pg.MaxOpenConns/2))
	db.SetConnMaxLifetime(pg.ConnLifetime)

	if err := ping(db.PingContext, db.Close); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("database connected", "dsn", redactDSN(pg.DSN()))
	}
	return db, nil
}

// ConnectRedis builds the client for the configured mode and pings it.
//
//nolint:ireturn // the concrete client depends on the configured mode.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	client, where, err := redisClient(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	pingRedis := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	if err := ping(pingRedis, client.Close); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "mode", cfg.RedisConfig.Mode, "addr", where)
	}
	return client, nil
}

// ping checks a fresh connection and closes it on failure.
func ping(check func(context.Context) error, closeFn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	err := check(ctx)
	if err == nil {
		return nil
	}
	if closeErr := closeFn(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close connection: %w", closeErr))
	}
	return err
}

// redisClient returns the client for cfg.Mode and a credential-free
// description of where it points.
//
//nolint:ireturn // the concrete client depends on the configured mode.
func redisClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	switch cfg.Mode {
	case config.RedisSentinel:
		if len(cfg.Nodes) == 0 {
			return nil, "", errors.New("redis sentinel mode requires REDIS_NODES")
		}
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    cfg.Nodes,
			Password:         cfg.Password,
			SentinelPassword: cfg.SentinelPassword,
			DB:               cfg.DB,
		}), "sentinel:" + cfg.MasterName, nil

	case config.RedisCluster:
		opts, err := clusterOptions(cfg)
		if err != nil {
			return nil, "", err
		}
		return redis.NewClusterClient(opts), "cluster:" + strings.Join(opts.Addrs, ","), nil

	default:
		opts, err := directOptions(cfg)
		if err != nil {
			return nil, "", err
		}
		return redis.NewClient(opts), opts.Addr, nil
	}
}

func directOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis direct mode requires REDIS_URI")
	}
	if !cfg.IsURL() {
		return &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}, nil
	}
	opts, err := redis.ParseURL(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}

// clusterOptions seeds from Nodes, falling back to Addr. A URL fallback also
// contributes its credentials and TLS settings.
func clusterOptions(cfg config.RedisConfig) (*redis.ClusterOptions, error) {
	opts := &redis.ClusterOptions{Addrs: cfg.Nodes, Password: cfg.Password}
	if len(opts.Addrs) > 0 {
		return opts, nil
	}
	if cfg.Addr == "" {
		return nil, errors.New("redis cluster mode requires REDIS_NODES or REDIS_URI")
	}
	if !cfg.IsURL() {
		opts.Addrs = []string{cfg.Addr}
		return opts, nil
	}
	seed, err := redis.ParseURL(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis cluster url: %w", err)
	}
	opts.Addrs = []string{seed.Addr}
	opts.Username = seed.Username
	if seed.Password != "" {
		opts.Password = seed.Password
	}
	opts.TLSConfig = seed.TLSConfig
	return opts, nil
}

// redactDSN hides the password in a postgres URL for logging.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres"
	}
	return u.Redacted()
}

// RunMigrations applies the embedded client_state schema.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}
	return nil
}
