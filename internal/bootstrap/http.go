package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/Kabuna254/Job-App/config"
	httpx "github.com/Kabuna254/Job-App/internal/http"
)

// HTTPHandlerConfig groups inputs for BuildHTTPHandler.
type HTTPHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

// BuildHTTPHandler wraps the router as Recover(Logging(Compression(router))).
func BuildHTTPHandler(cfg HTTPHandlerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	router, err := httpx.NewRouter(cfg.Services)
	if err != nil {
		return nil, err
	}

	var h http.Handler = router
	if cfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel, Logger: logger})(h)
	}
	return httpx.Recover(logger)(httpx.Logging(logger)(h)), nil
}

// routerServices maps the service container onto what the router needs.
func routerServices(cfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Accounts:     svc.Accounts,
		Listings:     svc.Listings,
		Verifier:     svc.Verifier,
		GuardLease:   cfg.Auth.SubmissionLease,
		ClipboardTTL: cfg.Auth.ClipboardWarning,
		CookieDomain: cfg.HTTP.CookieDomain,
		Metrics:      svc.Metrics,
		IsDev:        cfg.IsDev,
		Logger:       logger,
	}
	if svc.Storage != nil {
		rs.State = svc.Storage.KV
		rs.Guard = svc.Storage.Guard
	}
	return rs
}

// NewHTTPServer builds the UI server for cfg without starting it.
func NewHTTPServer(cfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("http server config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	handler, err := BuildHTTPHandler(HTTPHandlerConfig{
		Logger:   logger,
		Services: routerServices(cfg, svc, logger),
		HTTP:     cfg.HTTP,
	})
	if err != nil {
		return nil, fmt.Errorf("build http handler: %w", err)
	}

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout / 3,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}, nil
}

// ServeHTTP listens on srv.Addr and serves until ctx is done, then drains
// in-flight requests within shutdownTimeout.
func ServeHTTP(ctx context.Context, srv *http.Server, cfg config.HTTPConfig, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return serveListener(ctx, srv, ln, cfg, logger)
}

func serveListener(ctx context.Context, srv *http.Server, ln net.Listener, cfg config.HTTPConfig, logger *slog.Logger) error {
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()
	logger.InfoContext(ctx, "HTTP server listening", "addr", ln.Addr().String())

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	// ctx is already done; draining gets a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	logger.InfoContext(shutdownCtx, "shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.InfoContext(shutdownCtx, "HTTP server stopped")
	return nil
}
