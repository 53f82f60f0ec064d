// Package reaper connects the purge loop to whichever storage backend can
// delete expired client state.
package reaper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/service"
)

// ErrNoPurger is returned for backends that expire keys on their own.
var ErrNoPurger = errors.New("storage backend does not support purging")

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Purger  ports.StatePurger
	Config  config.ReaperConfig
	Logger  *slog.Logger
	Metrics statsd.Sink // nil disables purge metrics
}

// Runner owns a ReaperService for one backend. The server runs it on an
// interval; the CLI calls PurgeNow when it opens its profile.
type Runner struct {
	svc    *service.ReaperService
	logger *slog.Logger
}

// NewRunner fails with ErrNoPurger when opts.Purger is nil.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Purger == nil {
		return nil, ErrNoPurger
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	svc, err := service.NewReaperService(service.ReaperServiceOptions{
		Purger:   opts.Purger,
		Interval: opts.Config.Interval,
		Logger:   logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}
	return &Runner{svc: svc, logger: logger}, nil
}

// Run purges on the configured interval until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	return r.svc.Run(ctx)
}

// PurgeNow performs one purge and returns how many rows it removed.
func (r *Runner) PurgeNow(ctx context.Context) (int64, error) {
	n, err := r.svc.RunOnce(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired client state: %w", err)
	}
	return n, nil
}
