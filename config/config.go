package config

import (
	"os"
	"strings"
)

// AppConfig composes the job board UI configuration.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library, after an optional .env file:
//   - api.go: upstream job board API
//   - auth.go: token verification and submission guards
//   - storage.go: client state backend
//   - database.go: Postgres and Redis connections
//   - http.go: HTTP server
//   - services.go: which components run in this process
//   - cli.go: terminal client profile
//   - metrics.go: StatsD emission
type AppConfig struct {
	// IsDev enables template reloading from disk and text logs.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	API     APIConfig     `envPrefix:"JOBBOARD_API_"`
	Auth    AuthConfig    `envPrefix:"AUTH_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	// Services is a comma-separated list of components to run.
	Services string `env:"SERVICES" envDefault:"http"`

	Reaper ReaperConfig

	CLI CLIConfig

	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

// Sanitize applies guardrails to values loaded from env.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Storage.Sanitize()
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Reaper.Sanitize()
	c.CLI.Sanitize()
	c.Metrics.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.detectDevMode()
}

// detectDevMode falls back to NODE_ENV, which frontend tooling commonly sets.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	return err == nil && services[ServiceModeHTTP]
}

// IsReaperEnabled returns true if the reaper is enabled and the storage
// backend has rows to purge.
func (c *AppConfig) IsReaperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil || !services[ServiceModeReaper] {
		return false
	}
	return c.Storage.Backend == StoragePostgres || c.Storage.Backend == StorageSQLite
}
