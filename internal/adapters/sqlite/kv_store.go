// Package sqlite stores client state in a local SQLite file. The CLI uses it
// as its persistent key/value store; the server can use it for single-node
// deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Register the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	apperrors "github.com/Kabuna254/Job-App/internal/errors"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// connPragmas are applied by the driver to every pooled connection.
const connPragmas = "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS client_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	expires_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_client_state_expires ON client_state(expires_at) WHERE expires_at IS NOT NULL;
`

// KVStore implements ports.KVStore on SQLite.
type KVStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ ports.KVStore = (*KVStore)(nil)

// Options configures Open.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

// Open creates the parent directory if needed, opens dbPath in WAL mode, and
// ensures the schema exists.
func Open(ctx context.Context, dbPath string, opts Options) (*KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", apperrors.MapDBError(err))
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", apperrors.MapDBError(err))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &KVStore{db: db, ttl: opts.TTL, now: now}, nil
}

// Close releases the underlying database handle.
func (s *KVStore) Close() error { return s.db.Close() }

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, s.now().UnixMilli(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ports.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, apperrors.MapDBError(err))
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	now := s.now()
	var expires sql.NullInt64
	if s.ttl > 0 {
		expires = sql.NullInt64{Int64: now.Add(s.ttl).UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_state (key, value, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at
	`, key, value, now.UnixMilli(), expires)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, apperrors.MapDBError(err))
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, apperrors.MapDBError(err))
	}
	return nil
}

// PurgeExpired deletes rows whose TTL has passed.
func (s *KVStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge client_state: %w", apperrors.MapDBError(err))
	}
	return res.RowsAffected()
}
