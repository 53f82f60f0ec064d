package httpx

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
	mocks "github.com/Kabuna254/Job-App/internal/mocks/auth"
	"github.com/Kabuna254/Job-App/internal/service"
)

// Asset paths as seen from this package directory.
const (
	TemplatePathFromTest = "../../web/templates"
	StaticPathFromTest   = "../../web/static"
)

func testNow() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

// RequireTemplateRenderer builds a renderer over the on-disk templates.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Now:        testNow,
	})
	require.NoError(t, err)
	return tr
}

func jobsBody(totalPages int, titles ...string) map[string]any {
	jobs := make([]any, 0, len(titles))
	for i, title := range titles {
		jobs = append(jobs, map[string]any{
			"_id":      "job-" + string(rune('a'+i)),
			"title":    title,
			"company":  map[string]any{"name": "Acme Ltd"},
			"location": "Nairobi, Kenya",
			"type":     "Full-time",
		})
	}
	return map[string]any{"data": map[string]any{"jobs": jobs, "totalPages": float64(totalPages)}}
}

// testEnv is a router wired to in-memory doubles.
type testEnv struct {
	handler  http.Handler
	state    *mocks.MemoryKVStore
	accounts *mocks.MockAccountAPI
	jobs     *mocks.MockJobsAPI
	guard    *kvstore.Guard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		state:    mocks.NewMemoryKVStore(),
		accounts: mocks.NewMockAccountAPI(),
		jobs:     &mocks.MockJobsAPI{Body: jobsBody(3, "Backend Engineer", "Product Designer")},
		guard:    kvstore.NewGuard(),
	}
	h, err := NewRouter(RouterServices{
		State:      env.state,
		Accounts:   env.accounts,
		Listings:   service.NewListingService(service.ListingServiceOptions{API: env.jobs}),
		Guard:      env.guard,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS(StaticPathFromTest),
		Now:        testNow,
	})
	require.NoError(t, err)
	env.handler = h
	return env
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) cookie(name string) string {
	u, _ := url.Parse(b.srv.URL)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string, headers ...string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.srv.URL+path, nil)
	require.NoError(b.t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}

// post submits form with the CSRF token as a form field, priming the token
// with a GET first when the browser has none.
func (b *browser) post(path string, form url.Values, headers ...string) (*http.Response, string) {
	b.t.Helper()
	if b.cookie(DefaultCSRFCookieName) == "" {
		b.get("/login")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, b.cookie(DefaultCSRFCookieName))
	req, err := http.NewRequest(http.MethodPost, b.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}

func (b *browser) login(role, email string) *http.Response {
	b.t.Helper()
	resp, _ := b.post("/login", url.Values{"role": {role}, "email": {email}, "password": {"secret123"}})
	return resp
}
