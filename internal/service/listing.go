package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/observability/metrics"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// ListingServiceOptions groups dependencies for ListingService.
type ListingServiceOptions struct {
	API     ports.JobsAPI
	Logger  *slog.Logger
	Metrics statsd.Sink // Optional
}

// ListingService loads landing page listings. It never fails: fetch errors
// degrade to the demo set with a reason attached.
type ListingService struct {
	api     ports.JobsAPI
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewListingService constructs a ListingService.
func NewListingService(opts ListingServiceOptions) *ListingService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingService{api: opts.API, logger: logger.With("component", "listing"), metrics: opts.Metrics}
}

// Page returns the view for page, clamped to at least 1.
func (s *ListingService) Page(ctx context.Context, page int) listing.View {
	if page < 1 {
		page = 1
	}

	start := time.Now()
	raw, err := s.api.ListJobs(ctx, page)
	elapsed := time.Since(start)
	if err != nil {
		reason := ""
		var fe *listing.FetchError
		if errors.As(err, &fe) {
			reason = fe.Message
		}
		s.logger.WarnContext(ctx, "job listing fetch degraded",
			"kind", "FetchDegraded",
			"page", page,
			"error", err,
		)
		metrics.EmitListingLoad(s.metrics, metrics.ListingLoad{Result: metrics.ResultDegraded, Duration: elapsed, Err: err})
		return listing.Degraded(page, reason)
	}

	view := listing.Normalize(raw, page)
	result := metrics.ResultLive
	if view.UseDemo {
		result = metrics.ResultDemo
		s.logger.DebugContext(ctx, "job listing empty, showing demo content", "page", page)
	}
	metrics.EmitListingLoad(s.metrics, metrics.ListingLoad{Result: result, Duration: elapsed})
	return view
}
