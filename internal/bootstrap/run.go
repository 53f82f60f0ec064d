package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/reaper"
	"github.com/Kabuna254/Job-App/internal/ports"
)

const defaultShutdownTimeout = 10 * time.Second

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// component is one long-running part of the server process. run blocks until
// ctx is done and returns nil on a clean stop.
type component struct {
	mode config.ServiceMode
	name string
	run  func(ctx context.Context) error
}

// RunServicesWithShutdown starts the components named by SERVICES and blocks
// until SIGINT/SIGTERM or until one of them fails. A failure stops the rest.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runServices(ctx, cfg)
}

func runServices(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	comps, err := buildComponents(cfg, enabled, logger)
	if err != nil {
		return err
	}
	return runComponents(ctx, logger, enabled, comps)
}

// buildComponents constructs the HTTP server up front so handler errors
// surface before anything starts.
func buildComponents(cfg *ServiceOrchestrationConfig, enabled map[config.ServiceMode]bool, logger *slog.Logger) ([]component, error) {
	var comps []component
	if enabled[config.ServiceModeHTTP] {
		srv, err := NewHTTPServer(cfg.Config, cfg.Services, logger)
		if err != nil {
			return nil, err
		}
		comps = append(comps, component{
			mode: config.ServiceModeHTTP,
			name: "http",
			run: func(ctx context.Context) error {
				return ServeHTTP(ctx, srv, cfg.Config.HTTP, logger)
			},
		})
	}
	comps = append(comps, reaperComponent(cfg, logger))
	return comps, nil
}

func reaperComponent(cfg *ServiceOrchestrationConfig, logger *slog.Logger) component {
	return component{
		mode: config.ServiceModeReaper,
		name: "reaper",
		run: func(ctx context.Context) error {
			var purger ports.StatePurger
			if st := cfg.Services.Storage; st != nil {
				purger = st.Purger
			}
			runner, err := reaper.NewRunner(reaper.RunnerOptions{
				Purger:  purger,
				Config:  cfg.Config.Reaper,
				Logger:  logger,
				Metrics: cfg.Services.Metrics,
			})
			if err != nil {
				return fmt.Errorf("create reaper runner: %w", err)
			}
			return runner.Run(ctx)
		},
	}
}

// runComponents runs every enabled component and waits for all of them. The
// first failure cancels the others and is returned.
func runComponents(ctx context.Context, logger *slog.Logger, enabled map[config.ServiceMode]bool, comps []component) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range comps {
		if !enabled[c.mode] {
			continue
		}
		g.Go(func() error {
			logger.InfoContext(gctx, "service started", "service", c.name)
			err := c.run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorContext(gctx, "service failed", "service", c.name, "error", err)
				return fmt.Errorf("%s failed: %w", c.name, err)
			}
			logger.InfoContext(gctx, "service stopped", "service", c.name)
			return nil
		})
	}
	return g.Wait()
}
