package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/jobapi"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/service"
)

// ServiceContainer is everything the HTTP router and background components
// draw on.
type ServiceContainer struct {
	Accounts ports.AccountAPI
	Listings *service.ListingService
	Verifier ports.TokenVerifier
	Storage  *Storage
	Metrics  statsd.Sink
}

// ServiceDeps groups dependencies for NewServices.
type ServiceDeps struct {
	Config   *config.AppConfig
	Storage  *Storage
	Verifier ports.TokenVerifier // nil disables token checks
	Metrics  statsd.Sink         // nil disables metrics
	Logger   *slog.Logger
}

// NewServices builds the job board API client and the services on top of it.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	api := deps.Config.API

	client, err := jobapi.NewClient(jobapi.Config{BaseURL: api.URL, Timeout: api.Timeout, UserAgent: api.UserAgent})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create job board api client: %w", err)
	}
	listings := service.NewListingService(service.ListingServiceOptions{
		API:     client,
		Logger:  logger,
		Metrics: deps.Metrics,
	})

	return ServiceContainer{
		Accounts: client,
		Listings: listings,
		Verifier: deps.Verifier,
		Storage:  deps.Storage,
		Metrics:  deps.Metrics,
	}, nil
}
