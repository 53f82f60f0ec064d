package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/bootstrap"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg
	logger = bootstrap.ConfigureLogger(cfgPtr)

	logStartupInfo(ctx, logger, cfgPtr)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}

	storage, err := bootstrap.OpenStorage(ctx, bootstrap.StorageDeps{Config: cfgPtr, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close storage failed", "error", cerr)
		}
	}()

	var sink statsd.Sink
	if client := bootstrap.BuildMetricsClient(bootstrap.MetricsConfig{Metrics: cfg.Metrics, Logger: logger}); client != nil {
		sink = client
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.WarnContext(ctx, "close statsd client failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:   cfgPtr,
		Storage:  storage,
		Verifier: bootstrap.BuildTokenVerifier(ctx, bootstrap.VerifierConfig{Auth: cfg.Auth, Logger: logger}),
		Metrics:  sink,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfgPtr,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting job board UI",
		"api_url", cfg.API.URL,
		"storage_backend", cfg.Storage.Backend,
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev,
		"enabled_services", bootstrap.GetEnabledServices(cfg))
}
