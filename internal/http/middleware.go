package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// Logging logs one line per request. Server errors log at error level,
// client errors at warn; health checks and static assets drop to debug.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			logger.Log(r.Context(), requestLevel(r.URL.Path, sw.code()), "http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.code(),
				"bytes", sw.written,
				"htmx", IsHTMX(r),
				"duration", time.Since(start),
			)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case path == "/healthz" || strings.HasPrefix(path, "/static/"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// statusWriter remembers the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so net/http can abort the connection.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				logger.ErrorContext(r.Context(), "panic serving request",
					"error", fmt.Sprint(v),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// DefaultClientCookieMaxAge keeps the client id for a year.
const DefaultClientCookieMaxAge = 365 * 24 * time.Hour

// ClientScopeConfig configures the client-id cookie.
type ClientScopeConfig struct {
	CookieName   string
	CookieDomain string
	MaxAge       time.Duration
}

// ClientScope identifies the browser by an opaque UUID cookie and puts it in
// the request context. Every persisted session and theme value is keyed by
// it. Missing or malformed cookies are replaced.
func ClientScope(cfg ClientScopeConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = ClientCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultClientCookieMaxAge
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := readClientID(r, cfg.CookieName)
			if !ok {
				scope = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    scope,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   isSecureRequest(r),
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithClientScope(r.Context(), scope)))
		})
	}
}

// readClientID returns the cookie's UUID in canonical form.
func readClientID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// isSecureRequest reports whether r arrived over TLS, directly or behind a
// proxy that sets X-Forwarded-Proto.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for proto := range strings.SplitSeq(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// SessionResolver resolves the session of the client making r.
type SessionResolver interface {
	SessionFor(r *http.Request) domainauth.Session
}

// RequireRole admits only sessions holding role and stores the session in the
// request context. Signed-out browsers are redirected to the login page;
// everything else is refused with 401 or 403.
func RequireRole(sessions SessionResolver, role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.SessionFor(r)
			switch {
			case !sess.Present() && isBrowserRequest(r):
				Redirect(w, r, PathLogin)
			case !sess.Present():
				deny(w, r, http.StatusUnauthorized, "authentication_required", "authentication required")
			case !sess.HasRole(role):
				deny(w, r, http.StatusForbidden, "insufficient_permissions", "insufficient permissions")
			default:
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
			}
		})
	}
}

// deny answers browsers with plain text and API callers with the JSON error
// envelope.
func deny(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	if isBrowserRequest(r) {
		http.Error(w, "Access Denied: You don't have permission to access this page", status)
		return
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: code, Err: errors.New(msg)})
}

// isBrowserRequest separates page requests from JSON API calls: /api/
// routes and clients that do not accept HTML are API callers.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}
