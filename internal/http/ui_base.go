package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/service"
)

// ListingsService loads one page of the landing page listing.
type ListingsService interface {
	Page(ctx context.Context, page int) listing.View
}

var _ ListingsService = (*service.ListingService)(nil)

// UIHandlers serves the browser-facing routes. Per-client state lives in
// State under the client scope; everything else is shared.
type UIHandlers struct {
	T        *TemplateRenderer
	State    ports.KVStore
	Accounts ports.AccountAPI
	Listings ListingsService
	// Optional.
	Verifier     ports.TokenVerifier
	Guard        ports.SubmissionGuard
	GuardLease   time.Duration
	ClipboardTTL time.Duration
	Metrics      statsd.Sink
	Now          func() time.Time
	Logger       *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default().With("component", "ui")
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// client is the state bound to one browser for the duration of a request.
type client struct {
	scope    string
	sessions *service.SessionStore
	theme    *theme.Applied
}

func (h *UIHandlers) clientFor(r *http.Request) client {
	scope, ok := ClientScopeFrom(r.Context())
	if !ok {
		// Without a scope nothing may be shared with other clients.
		scope = uuid.NewString()
	}
	applied := &theme.Applied{}
	return client{
		scope: scope,
		theme: applied,
		sessions: service.NewSessionStore(service.SessionStoreOptions{
			KV:       kvstore.NewScoped(h.State, scope),
			API:      h.Accounts,
			Verifier: h.Verifier,
			Theme:    applied,
			Logger:   h.logger(),
		}),
	}
}

// SessionFor implements SessionResolver.
func (h *UIHandlers) SessionFor(r *http.Request) domainauth.Session {
	return h.clientFor(r).sessions.CurrentSession(r.Context())
}

func (h *UIHandlers) authFlow(c client, form string) *service.AuthFlow {
	return service.NewAuthFlow(service.AuthFlowOptions{
		Sessions:   c.sessions,
		API:        h.Accounts,
		Guard:      h.Guard,
		GuardKey:   c.scope + ":" + form,
		GuardLease: h.GuardLease,
		Logger:     h.logger(),
		Metrics:    h.Metrics,
	})
}

// prefersDark reads the color-scheme client hint.
func prefersDark(r *http.Request) bool {
	return theme.PrefersDarkHint(r.Header.Get(HeaderPrefersColorScheme))
}

// chrome builds the shared layout with menus closed. It resolves and applies
// the theme, and asks the browser for the color-scheme hint on later requests.
func (h *UIHandlers) chrome(w http.ResponseWriter, r *http.Request, c client, sess domainauth.Session) viewmodel.Layout {
	pref := c.sessions.Theme(r.Context(), prefersDark(r))
	w.Header().Set(HeaderAcceptCH, HeaderPrefersColorScheme)
	w.Header().Add("Vary", HeaderPrefersColorScheme)
	return viewmodel.Layout{
		CSRFToken: CSRFTokenFrom(r.Context()),
		RootClass: c.theme.RootClass(),
		DarkMode:  pref == theme.Dark,
		Nav:       viewmodel.BuildNav(sess),
		Year:      h.now().Year(),
	}
}

// layout is chrome plus the page title and any queued flash.
func (h *UIHandlers) layout(w http.ResponseWriter, r *http.Request, c client, sess domainauth.Session, title, page string) viewmodel.Layout {
	l := h.chrome(w, r, c, sess)
	l.Title = title
	l.Page = page
	if f, ok := PopFlash(w, r); ok {
		l.Flashes = append(l.Flashes, f)
	}
	return l
}

// ErrorPage is the data for the standalone error template.
type ErrorPage struct {
	viewmodel.Layout
	Status  int
	Message string
}

func (h *UIHandlers) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	c := h.clientFor(r)
	l := h.chrome(w, r, c, c.sessions.CurrentSession(r.Context()))
	l.Title = http.StatusText(status)
	l.Page = PageError
	if err := h.T.RenderError(w, status, ErrorPage{Layout: l, Status: status, Message: msg}); err != nil {
		http.Error(w, msg, status)
	}
}

func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data viewmodel.LayoutProvider) {
	if err := h.T.RenderPage(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page", "page", data.LayoutData().Page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderFragment(w, name, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render fragment", "fragment", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page for unmatched browser routes.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// pageParam parses ?page=N. Missing or invalid values mean page 1.
func pageParam(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		return n
	}
	return 1
}

// backTo returns the local path of the Referer, or fallback when it is
// missing or points off-site.
func backTo(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return fallback
	}
	p := u.EscapedPath()
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}
