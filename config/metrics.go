package config

import "strings"

const defaultStatsdAddress = "127.0.0.1:8125"

// MetricsConfig controls StatsD emission for auth submissions, listing
// fetches, and state purges.
type MetricsConfig struct {
	Enabled       bool   `env:"ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"PREFIX"         envDefault:"jobboard"`
}

// Sanitize trims the address and restores defaults for blank values.
func (m *MetricsConfig) Sanitize() {
	m.StatsdAddress = strings.TrimSpace(m.StatsdAddress)
	if m.StatsdAddress == "" {
		m.StatsdAddress = defaultStatsdAddress
	}
	m.Prefix = strings.Trim(strings.TrimSpace(m.Prefix), ".")
}

// IsEnabled reports whether metrics should be emitted.
func (m *MetricsConfig) IsEnabled() bool {
	return m.Enabled && m.StatsdAddress != ""
}
