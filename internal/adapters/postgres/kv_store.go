// Package postgres stores client state in the client_state table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/Kabuna254/Job-App/internal/errors"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// KVStore implements ports.KVStore on PostgreSQL.
type KVStore struct {
	DB  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ ports.KVStore = (*KVStore)(nil)

// KVStoreOptions configures a KVStore.
type KVStoreOptions struct {
	// TTL expires rows this long after their last write; zero keeps them.
	TTL time.Duration
	Now func() time.Time
}

// NewKVStore creates a KVStore over db. The schema comes from migrate.Run.
func NewKVStore(db *sql.DB, opts KVStoreOptions) *KVStore {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &KVStore{DB: db, ttl: opts.TTL, now: now}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := withPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT value FROM client_state
			WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
		`, key, s.now().UTC()).Scan(&value)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ports.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, apperrors.MapDBError(err))
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	now := s.now().UTC()
	var expires sql.NullTime
	if s.ttl > 0 {
		expires = sql.NullTime{Time: now.Add(s.ttl), Valid: true}
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO client_state (key, value, updated_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at, expires_at = EXCLUDED.expires_at
	`, key, value, now, expires)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, apperrors.MapDBError(err))
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, apperrors.MapDBError(err))
	}
	return nil
}

// PurgeExpired deletes rows whose TTL has passed and returns how many went.
func (s *KVStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= $1`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge client_state: %w", apperrors.MapDBError(err))
	}
	return res.RowsAffected()
}
