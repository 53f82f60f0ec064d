package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageBackend selects where client state (user, token, theme) lives.
type StorageBackend string

const (
	// StorageMemory keeps state in process; it is lost on restart.
	StorageMemory StorageBackend = "memory"
	// StorageRedis keeps state in Redis with native key expiry.
	StorageRedis StorageBackend = "redis"
	// StoragePostgres keeps state in the client_state table.
	StoragePostgres StorageBackend = "postgres"
	// StorageSQLite keeps state in a local SQLite file.
	StorageSQLite StorageBackend = "sqlite"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch StorageBackend(v) {
	case StorageMemory, StorageRedis, StoragePostgres, StorageSQLite:
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, redis, postgres, sqlite)", v)
	}
}

// StorageConfig configures the client state store.
type StorageConfig struct {
	Backend StorageBackend `env:"BACKEND" envDefault:"memory"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"jobboard:"`

	// TTL expires idle client state; zero keeps it until logout.
	TTL time.Duration `env:"TTL" envDefault:"168h"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/jobboard.db"`
}

// Sanitize clamps negative TTLs to zero.
func (s *StorageConfig) Sanitize() {
	if s.TTL < 0 {
		s.TTL = 0
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "jobboard:"
	}
}

// ReaperConfig controls the expired-state purge loop.
type ReaperConfig struct {
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"10m"`
}

// Sanitize enforces a one minute floor on the purge interval.
func (r *ReaperConfig) Sanitize() {
	if r.Interval < time.Minute {
		r.Interval = time.Minute
	}
}
