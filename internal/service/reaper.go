package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/Kabuna254/Job-App/internal/observability/metrics"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// DefaultReaperInterval is how often expired client state is purged.
const DefaultReaperInterval = 10 * time.Minute

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Purger   ports.StatePurger // Required
	Interval time.Duration     // Optional: defaults to DefaultReaperInterval
	Logger   *slog.Logger      // Optional
	Metrics  statsd.Sink       // Optional
}

// ReaperService periodically deletes expired client state rows.
type ReaperService struct {
	purger   ports.StatePurger
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Purger == nil {
		return nil, errors.New("StatePurger is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultReaperInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaperService{
		purger:   opts.Purger,
		interval: interval,
		logger:   logger.With("component", "reaper_service"),
		metrics:  opts.Metrics,
	}, nil
}

// Run purges once after a short jitter and then on every tick until ctx is
// cancelled. It returns nil on graceful shutdown.
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting reaper service", "interval", s.interval)
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WarnContext(ctx, "client state purge failed", "error", err)
		}
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reaper service stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single purge.
func (s *ReaperService) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.purger.PurgeExpired(ctx)
	metrics.EmitPurge(s.metrics, n, err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "purged expired client state", "count", n)
	}
	return n, nil
}

// waitWithJitter delays up to 10% of the interval so replicas started
// together don't purge in lockstep.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
