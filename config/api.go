package config

import (
	"strings"
	"time"
)

const (
	defaultAPITimeout = 10 * time.Second
	maxAPITimeout     = 2 * time.Minute
)

// APIConfig points the UI at the job board API.
type APIConfig struct {
	// URL is the API base, e.g. http://localhost:5000/api.
	URL       string        `env:"URL"        envDefault:"http://localhost:5000/api"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"10s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"jobboard-ui/1.0"`
}

// Sanitize trims the base URL and clamps the timeout.
func (a *APIConfig) Sanitize() {
	a.URL = strings.TrimRight(strings.TrimSpace(a.URL), "/")
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
}
