package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DBConfig holds the Postgres settings for STORAGE_BACKEND=postgres.
type DBConfig struct {
	// URL, when set, is used verbatim and the discrete fields are ignored.
	URL      string `env:"URL"`
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"jobboard"`
	Password string `env:"PASSWORD" envDefault:"jobboard"`
	Name     string `env:"NAME"     envDefault:"jobboard"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`

	MaxOpenConns int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	ConnLifetime time.Duration `env:"CONN_LIFETIME"  envDefault:"5m"`

	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Sanitize keeps the pool usable.
func (c *DBConfig) Sanitize() {
	c.URL = strings.TrimSpace(c.URL)
	if c.MaxOpenConns < 1 {
		c.MaxOpenConns = 1
	}
	if c.ConnLifetime <= 0 {
		c.ConnLifetime = 5 * time.Minute
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

// DSN returns the connection string for the pgx driver.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisMode selects how the Redis client finds its servers.
type RedisMode string

const (
	RedisDirect   RedisMode = "direct"
	RedisSentinel RedisMode = "sentinel"
	RedisCluster  RedisMode = "cluster"
)

// UnmarshalText implements encoding.TextUnmarshaler for RedisMode.
func (m *RedisMode) UnmarshalText(text []byte) error {
	v := RedisMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case "":
		*m = RedisDirect
	case RedisDirect, RedisSentinel, RedisCluster:
		*m = v
	default:
		return fmt.Errorf("invalid RedisMode: %q (valid options: direct, sentinel, cluster)", v)
	}
	return nil
}

// RedisConfig holds the Redis settings for STORAGE_BACKEND=redis.
//
// In direct mode Addr may be host:port or a redis:// / rediss:// URL. In
// cluster mode Nodes lists seed addresses and Addr is the fallback seed. In
// sentinel mode Nodes lists the sentinels.
type RedisConfig struct {
	Mode     RedisMode `env:"MODE"     envDefault:"direct"`
	Addr     string    `env:"URI"      envDefault:"localhost:6379"`
	Password string    `env:"PASSWORD"`
	DB       int       `env:"DB"       envDefault:"0"`

	Nodes []string `env:"NODES"`

	MasterName       string `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword string `env:"SENTINEL_PASSWORD"`
}

// Sanitize trims addresses and drops empty node entries.
func (c *RedisConfig) Sanitize() {
	if c.Mode == "" {
		c.Mode = RedisDirect
	}
	c.Addr = strings.TrimSpace(c.Addr)
	nodes := c.Nodes[:0]
	for _, n := range c.Nodes {
		if n = strings.TrimSpace(n); n != "" {
			nodes = append(nodes, n)
		}
	}
	c.Nodes = nodes
}

// IsURL reports whether Addr is a redis:// or rediss:// URL.
func (c RedisConfig) IsURL() bool {
	return strings.HasPrefix(c.Addr, "redis://") || strings.HasPrefix(c.Addr, "rediss://")
}
