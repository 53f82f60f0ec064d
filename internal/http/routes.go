package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	jobboard "github.com/Kabuna254/Job-App"
	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// Web asset locations relative to the repository root, used in dev mode.
const (
	TemplatePathFromRoot = "web/templates"
	StaticPathFromRoot   = "web/static"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	// State is the shared client-state store; the router scopes it per browser.
	State    ports.KVStore
	Accounts ports.AccountAPI
	Listings ListingsService
	// Optional.
	Verifier     ports.TokenVerifier
	Guard        ports.SubmissionGuard
	GuardLease   time.Duration
	ClipboardTTL time.Duration
	CookieDomain string
	Metrics      statsd.Sink
	// TemplateFS and StaticFS override the embedded assets (tests, dev mode).
	TemplateFS fs.FS
	StaticFS   fs.FS
	IsDev      bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewRouter builds the application handler: health and static routes, then
// every page behind the client scope and CSRF middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	templateFS, staticFS, err := webAssets(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger, Now: services.Now})
	if err != nil {
		return nil, err
	}
	ui := &UIHandlers{
		T:            tr,
		State:        services.State,
		Accounts:     services.Accounts,
		Listings:     services.Listings,
		Verifier:     services.Verifier,
		Guard:        services.Guard,
		GuardLease:   services.GuardLease,
		ClipboardTTL: services.ClipboardTTL,
		Metrics:      services.Metrics,
		Now:          services.Now,
		Logger:       logger.With("component", "ui"),
	}

	app := http.NewServeMux()
	registerPageRoutes(app, ui)
	registerAuthRoutes(app, ui)
	registerAPIRoutes(app, ui)

	scoped := ClientScope(ClientScopeConfig{CookieDomain: services.CookieDomain})(
		CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(app),
	)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("HEAD /healthz", healthHandler)
	root.Handle("GET /static/", staticHandler(staticFS, services.IsDev))
	root.Handle("/", scoped)
	return root, nil
}

func webAssets(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS(StaticPathFromRoot)
		}
	}
	var err error
	if templateFS == nil {
		if templateFS, err = fs.Sub(jobboard.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, err
		}
	}
	if staticFS == nil {
		if staticFS, err = fs.Sub(jobboard.StaticFS, StaticPathFromRoot); err != nil {
			return nil, nil, err
		}
	}
	return templateFS, staticFS, nil
}

func registerPageRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /nav", h.Nav)
	mux.HandleFunc("POST /theme/toggle", h.ToggleTheme)
	mux.Handle("GET /employer/dashboard",
		RequireRole(h, domainauth.RoleEmployer)(http.HandlerFunc(h.EmployerDashboard)))
	mux.HandleFunc("/", h.NotFound)
}

func registerAuthRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /register/role", h.SelectRole)
	mux.HandleFunc("POST /register/clipboard", h.Clipboard)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("POST /account/delete", h.DeleteAccount)
}

func registerAPIRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /auth/status", h.AuthStatus)
	mux.HandleFunc("GET /api/jobs", h.Jobs)
}

// staticHandler serves web/static. Embedded assets are immutable for the
// life of the binary and may be cached; dev assets may not.
func staticHandler(staticFS fs.FS, isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServerFS(staticFS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
