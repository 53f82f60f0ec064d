package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// Persisted key names within a client scope.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// ErrNotSignedIn is returned by DeleteAccount when there is no session.
var ErrNotSignedIn = errors.New("not signed in")

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	KV       ports.KVStore
	API      ports.AccountAPI
	Verifier ports.TokenVerifier // optional
	Theme    ports.ThemeApplier  // optional
	Logger   *slog.Logger
}

// SessionStore derives the current session and theme from persisted client
// state and keeps that state in step with the account API.
type SessionStore struct {
	kv       ports.KVStore
	api      ports.AccountAPI
	verifier ports.TokenVerifier
	applier  ports.ThemeApplier
	logger   *slog.Logger
}

// NewSessionStore constructs a SessionStore.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		kv:       opts.KV,
		api:      opts.API,
		verifier: opts.Verifier,
		applier:  opts.Theme,
		logger:   logger.With("component", "session_store"),
	}
}

// CurrentSession returns the persisted session. Anything missing, unreadable,
// or malformed yields an anonymous session.
func (s *SessionStore) CurrentSession(ctx context.Context) domainauth.Session {
	raw, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "read persisted identity", "error", err)
		}
		return domainauth.Anonymous()
	}

	var id domainauth.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		s.logger.DebugContext(ctx, "discarding malformed identity", "error", err)
		return domainauth.Anonymous()
	}
	sess := domainauth.Authenticated(id)
	if !sess.Present() || s.verifier == nil {
		return sess
	}

	tok, err := s.kv.Get(ctx, KeyToken)
	if err != nil || tok == "" {
		return domainauth.Anonymous()
	}
	if err := s.verifier.Verify(ctx, tok); err != nil {
		s.logger.InfoContext(ctx, "persisted token rejected", "error", err)
		return domainauth.Anonymous()
	}
	return sess
}

// Login authenticates against the API and persists the identity on success.
// Rejections are returned as *AuthError and leave persisted state untouched.
func (s *SessionStore) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	issued, err := s.api.Login(ctx, creds)
	if err != nil {
		return domainauth.Anonymous(), err
	}

	sess := domainauth.Authenticated(issued.Identity)
	if !sess.Present() {
		return domainauth.Anonymous(), &domainauth.AuthError{
			Kind:  domainauth.ErrKindServerMessage,
			Cause: fmt.Errorf("login returned unusable identity with role %q", issued.Identity.Role),
		}
	}
	if s.verifier != nil {
		if verr := s.verifier.Verify(ctx, issued.Token); verr != nil {
			return domainauth.Anonymous(), &domainauth.AuthError{Kind: domainauth.ErrKindServerMessage, Cause: verr}
		}
	}

	if err := s.persist(ctx, issued); err != nil {
		return domainauth.Anonymous(), err
	}
	s.logger.InfoContext(ctx, "signed in", "role", issued.Identity.Role)
	return sess, nil
}

func (s *SessionStore) persist(ctx context.Context, issued domainauth.IssuedSession) error {
	body, err := json.Marshal(issued.Identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	if issued.Token != "" {
		if err := s.kv.Set(ctx, KeyToken, issued.Token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	} else if err := s.kv.Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	if err := s.kv.Set(ctx, KeyUser, string(body)); err != nil {
		if delErr := s.kv.Delete(ctx, KeyToken); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

// Logout clears the persisted identity. Calling it without a session is a no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyUser, KeyToken} {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// DeleteAccount asks the API to delete the account and signs out only when
// the API confirms it.
func (s *SessionStore) DeleteAccount(ctx context.Context) error {
	if !s.CurrentSession(ctx).Present() {
		return ErrNotSignedIn
	}

	tok, err := s.kv.Get(ctx, KeyToken)
	if err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		return fmt.Errorf("read token: %w", err)
	}
	if err := s.api.DeleteAccount(ctx, tok); err != nil {
		s.logger.WarnContext(ctx, "account deletion failed", "error", err)
		return err
	}
	return s.Logout(ctx)
}

// Theme resolves the preference (stored value, then OS signal, then light)
// and applies it.
func (s *SessionStore) Theme(ctx context.Context, osPrefersDark bool) theme.Preference {
	stored, err := s.kv.Get(ctx, theme.PersistedKey)
	if err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		s.logger.WarnContext(ctx, "read theme preference", "error", err)
	}
	p := theme.Resolve(stored, osPrefersDark)
	s.apply(p)
	return p
}

// SetTheme persists p and applies it.
func (s *SessionStore) SetTheme(ctx context.Context, p theme.Preference) error {
	if err := s.kv.Set(ctx, theme.PersistedKey, p.Persisted()); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	s.apply(p)
	return nil
}

// ToggleTheme flips the current preference and returns the new one.
func (s *SessionStore) ToggleTheme(ctx context.Context, osPrefersDark bool) (theme.Preference, error) {
	cur := s.Theme(ctx, osPrefersDark)
	next := cur.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}

func (s *SessionStore) apply(p theme.Preference) {
	if s.applier != nil {
		s.applier.ApplyTheme(p)
	}
}
