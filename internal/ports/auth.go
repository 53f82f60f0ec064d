package ports

// Package ports defines interfaces (hexagonal ports) for session and account behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
)

// ErrKeyNotFound is returned by KVStore.Get for keys that hold no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore persists opaque string values under fixed key names.
// Implementations are scoped to one client; see kvstore.Scoped.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AccountAPI is the remote service that owns credentials and accounts.
// Failures are reported as *domainauth.AuthError.
type AccountAPI interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.IssuedSession, error)
	Register(ctx context.Context, payload registration.Payload) error
	DeleteAccount(ctx context.Context, token string) error
}

// TokenVerifier checks an access token issued by the account API.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) error
}

// ThemeApplier reflects the active theme onto the presentation root.
type ThemeApplier interface {
	ApplyTheme(p theme.Preference)
}

// SubmissionGuard admits one in-flight submission per key. The returned
// release func must be called when the submission settles.
type SubmissionGuard interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// StatePurger removes expired client state. Stores without native expiry
// (SQL backends) implement it; Redis expires keys on its own.
type StatePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
