package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/jobapi"
	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
	"github.com/Kabuna254/Job-App/internal/adapters/reaper"
	"github.com/Kabuna254/Job-App/internal/adapters/sqlite"
	"github.com/Kabuna254/Job-App/internal/bootstrap"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/service"
)

// clientDeps are the collaborators a command context is built from.
type clientDeps struct {
	Config   config.AppConfig
	Store    ports.KVStore
	Accounts ports.AccountAPI
	Jobs     ports.JobsAPI
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// cookieKey holds the API cookies of one profile between runs.
const cookieKey = "cookies"

// cookieCarrier exposes the API client's cookie jar.
type cookieCarrier interface {
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// restoreCookies loads the cookies a previous run saved into jar.
func restoreCookies(ctx context.Context, kv ports.KVStore, jar cookieCarrier) error {
	raw, err := kv.Get(ctx, cookieKey)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cookies: %w", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// Drop a corrupt entry; the API will issue fresh cookies.
		return kv.Delete(ctx, cookieKey)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	jar.SetCookies(cookies)
	return nil
}

// persistCookies saves the jar's cookies for the next run.
func persistCookies(ctx context.Context, kv ports.KVStore, jar cookieCarrier) error {
	cookies := jar.Cookies()
	if len(cookies) == 0 {
		return kv.Delete(ctx, cookieKey)
	}
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	buf, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	return kv.Set(ctx, cookieKey, string(buf))
}

// openCommandContext opens the SQLite profile and the API client. The
// returned func saves the API cookies and closes the profile.
func openCommandContext(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*commandContext, func() error, error) {
	store, err := sqlite.Open(ctx, cfg.CLI.ProfilePath, sqlite.Options{TTL: cfg.Storage.TTL})
	if err != nil {
		return nil, nil, fmt.Errorf("open profile %s: %w", cfg.CLI.ProfilePath, err)
	}
	// Expired rows would read as missing anyway; purge them so the file stays small.
	if runner, rerr := reaper.NewRunner(reaper.RunnerOptions{Purger: store, Logger: logger}); rerr == nil {
		if _, perr := runner.PurgeNow(ctx); perr != nil {
			logger.DebugContext(ctx, "purge expired profile state", "error", perr)
		}
	}

	client, err := jobapi.NewClient(jobapi.Config{
		BaseURL:   cfg.API.URL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		CookieJar: true,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	scoped := kvstore.NewScoped(store, cfg.CLI.Profile)
	if err := restoreCookies(ctx, scoped, client); err != nil {
		logger.WarnContext(ctx, "restore API cookies", "error", err)
	}

	c := newCommandContext(ctx, clientDeps{
		Config:   *cfg,
		Store:    store,
		Accounts: client,
		Jobs:     client,
		Verifier: bootstrap.BuildTokenVerifier(ctx, bootstrap.VerifierConfig{Auth: cfg.Auth, Logger: logger}),
		Logger:   logger,
	})
	closeProfile := func() error {
		// The command context may already be cancelled by a signal.
		saveCtx := context.WithoutCancel(ctx)
		return errors.Join(persistCookies(saveCtx, scoped, client), store.Close())
	}
	return c, closeProfile, nil
}

func newCommandContext(ctx context.Context, deps clientDeps) *commandContext {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	applied := &theme.Applied{}
	return &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: deps.Config,
		Out:    os.Stdout,
		In:     os.Stdin,
		Sessions: service.NewSessionStore(service.SessionStoreOptions{
			KV:       kvstore.NewScoped(deps.Store, deps.Config.CLI.Profile),
			API:      deps.Accounts,
			Verifier: deps.Verifier,
			Theme:    applied,
			Logger:   logger,
		}),
		Theme:    applied,
		Accounts: deps.Accounts,
		Listings: service.NewListingService(service.ListingServiceOptions{API: deps.Jobs, Logger: logger}),
		Guard:    kvstore.NewGuard(),
		Now:      now,
	}
}

// authFlow builds the submission flow for one command run.
func (c *commandContext) authFlow(form string) *service.AuthFlow {
	return service.NewAuthFlow(service.AuthFlowOptions{
		Sessions:   c.Sessions,
		API:        c.Accounts,
		Guard:      c.Guard,
		GuardKey:   c.Config.CLI.Profile + ":" + form,
		GuardLease: c.Config.Auth.SubmissionLease,
		Logger:     c.Logger,
	})
}

// prefersDark reads JOBBOARD_THEME_HINT, the CLI's stand-in for the OS preference.
func (c *commandContext) prefersDark() bool {
	return theme.PrefersDarkHint(c.Config.CLI.ThemeHint)
}
