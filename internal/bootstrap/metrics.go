package bootstrap

import (
	"log/slog"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
)

// MetricsConfig groups inputs for BuildMetricsClient.
type MetricsConfig struct {
	Metrics config.MetricsConfig
	Logger  *slog.Logger
}

// BuildMetricsClient returns a StatsD client when metrics are enabled. A
// dial failure is logged and yields a disabled client so startup continues.
func BuildMetricsClient(cfg MetricsConfig) *statsd.Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obsLogger := logger.With("component", "metrics")

	if !cfg.Metrics.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  obsLogger,
	})
	if err != nil {
		obsLogger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	obsLogger.Info("statsd metrics enabled", "address", cfg.Metrics.StatsdAddress)
	return client
}
