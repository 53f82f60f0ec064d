package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Kabuna254/Job-App/config"
)

// serviceOrder is the order components are listed and started in.
var serviceOrder = []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeReaper}

// InitLogger installs an info-level JSON logger on stdout as the default.
// ConfigureLogger replaces it once the configuration is loaded.
func InitLogger() *slog.Logger {
	return setDefault(NewLogger(os.Stdout, "info", false))
}

// ConfigureLogger installs the logger described by cfg: text in dev mode,
// JSON otherwise, at LOG_LEVEL.
func ConfigureLogger(cfg *config.AppConfig) *slog.Logger {
	return setDefault(NewLogger(os.Stdout, cfg.LogLevel, cfg.IsDev))
}

// NewLogger builds a logger writing to w. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func setDefault(l *slog.Logger) *slog.Logger {
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// LoadConfig reads an optional .env file, then parses and sanitizes the
// environment.
func LoadConfig() (config.AppConfig, error) {
	var cfg config.AppConfig
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env file: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// ValidateServiceConfig reports every problem with the process
// configuration at once.
func ValidateServiceConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("service config is required")
	}
	var problems []error
	services, err := cfg.GetEnabledServices()
	if err != nil {
		problems = append(problems, fmt.Errorf("invalid service configuration: %w", err))
	}
	if services[config.ServiceModeReaper] && !cfg.IsReaperEnabled() {
		problems = append(problems,
			fmt.Errorf("reaper requires a postgres or sqlite storage backend, got %q", cfg.Storage.Backend))
	}
	if strings.TrimSpace(cfg.API.URL) == "" {
		problems = append(problems, errors.New("JOBBOARD_API_URL is required"))
	}
	return errors.Join(problems...)
}

// GetEnabledServices lists the enabled service names for logging. An invalid
// SERVICES value yields an empty list.
func GetEnabledServices(cfg *config.AppConfig) []string {
	names := []string{}
	if cfg == nil {
		return names
	}
	services, err := cfg.GetEnabledServices()
	if err != nil {
		return names
	}
	for _, mode := range serviceOrder {
		if services[mode] {
			names = append(names, string(mode))
		}
	}
	return names
}
