package config

import "time"

// HTTPConfig configures the UI server.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain scopes the client-id and CSRF cookies; empty means the
	// request host.
	CookieDomain string `env:"APP_COOKIE_DOMAIN"`

	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL"   envDefault:"6"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize keeps the gzip level in 1..9 and replaces non-positive timeouts.
func (h *HTTPConfig) Sanitize() {
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	orDefault(&h.ReadTimeout, 30*time.Second)
	orDefault(&h.WriteTimeout, 30*time.Second)
	orDefault(&h.IdleTimeout, 2*time.Minute)
	orDefault(&h.ShutdownTimeout, 10*time.Second)
}

func orDefault(d *time.Duration, def time.Duration) {
	if *d <= 0 {
		*d = def
	}
}
