package httpx

import (
	"context"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// Unexported context key types; all handlers and middleware go through the
// helpers below.
type (
	clientScopeKey struct{}
	sessionKey     struct{}
	csrfTokenKey   struct{}
)

// WithClientScope returns a child context carrying the browser's client scope.
func WithClientScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, clientScopeKey{}, scope)
}

// ClientScopeFrom returns the client scope set by the ClientScope middleware.
func ClientScopeFrom(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(clientScopeKey{}).(string)
	return scope, ok && scope != ""
}

// SetSessionInContext stores the resolved session for downstream handlers.
func SetSessionInContext(ctx context.Context, s domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by RequireRole, if any.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return s, ok
}

func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// CSRFTokenFrom returns the token for templates to embed in forms.
func CSRFTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey{}).(string)
	return token
}
