package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
)

func TestHome(t *testing.T) {
	t.Run("guest sees jobs, pagination and guest call to action", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)

		resp, body := b.get("/?page=2")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Backend Engineer")
		assert.Contains(t, body, "Acme Ltd")
		assert.Contains(t, body, "Page 2 of 3")
		assert.Contains(t, body, "Ready to Start Your Career Journey?")
		assert.Contains(t, body, `href="/register"`)
		assert.NotContains(t, body, "demo-notice")
		assert.Equal(t, []int{2}, env.jobs.Pages())
		assert.NotEmpty(t, b.cookie(ClientCookieName))
	})

	t.Run("fetch failure shows the error notice", func(t *testing.T) {
		env := newTestEnv(t)
		env.jobs.Body = nil
		env.jobs.Err = &listing.FetchError{Message: "upstream down"}

		_, body := newBrowser(t, env.handler).get("/")
		assert.Contains(t, body, FlashListingDegraded)
		assert.NotContains(t, body, "Senior Software Engineer")
	})

	t.Run("empty listing falls back to demo content", func(t *testing.T) {
		env := newTestEnv(t)
		env.jobs.Body = jobsBody(0)

		_, body := newBrowser(t, env.handler).get("/")
		assert.Contains(t, body, "Senior Software Engineer")
		assert.Contains(t, body, "demo-notice")
		assert.NotContains(t, body, "pagination-info")
	})

	t.Run("htmx request gets the content without the layout", func(t *testing.T) {
		env := newTestEnv(t)
		_, body := newBrowser(t, env.handler).get("/", "Hx-Request", "true")
		assert.Contains(t, body, "Latest Job Opportunities")
		assert.NotContains(t, body, "<html")
	})
}

func TestLogin(t *testing.T) {
	t.Run("seeker lands on home with the account menu", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)

		resp := b.login("seeker", "mock.user@example.com")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		_, body := b.get("/")
		assert.Contains(t, body, "Mock User")
		assert.Contains(t, body, "Ready to Find Your Next Opportunity?")
		assert.NotContains(t, body, `class="nav-button"`)
	})

	t.Run("employer lands on the dashboard", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.LoginFunc = func(_ context.Context, creds domainauth.Credentials) (domainauth.IssuedSession, error) {
			assert.Equal(t, domainauth.RoleEmployer, creds.Role)
			return domainauth.IssuedSession{
				Identity: domainauth.Identity{Email: creds.Email, Name: "Acme HR", Role: domainauth.RoleEmployer},
				Token:    "employer-token",
			}, nil
		}
		b := newBrowser(t, env.handler)

		resp := b.login("employer", "hr@acme.co")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/employer/dashboard", resp.Header.Get("Location"))

		resp, body := b.get("/employer/dashboard")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Acme HR")
	})

	t.Run("htmx login redirects through Hx-Redirect", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)
		resp, _ := b.post("/login",
			url.Values{"role": {"seeker"}, "email": {"a@b.co"}, "password": {"secret123"}},
			"Hx-Request", "true")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Hx-Redirect"))
	})

	t.Run("rejected credentials re-render the form without the password", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.IssuedSession, error) {
			return domainauth.IssuedSession{}, domainauth.InvalidCredentials("")
		}
		b := newBrowser(t, env.handler)

		resp, body := b.post("/login", url.Values{"role": {"seeker"}, "email": {"a@b.co"}, "password": {"wrong-pass"}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Invalid email or password")
		assert.Contains(t, body, `value="a@b.co"`)
		assert.NotContains(t, body, "wrong-pass")

		_, ok := env.state.Snapshot()["client:"+b.cookie(ClientCookieName)+":user"]
		assert.False(t, ok)
	})

	t.Run("second submission while one is in flight makes no API call", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)
		b.get("/login")

		release, ok, err := env.guard.TryAcquire(context.Background(), b.cookie(ClientCookieName)+":login", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		defer release()

		_, body := b.post("/login", url.Values{"role": {"seeker"}, "email": {"a@b.co"}, "password": {"secret123"}})
		assert.Contains(t, body, FlashSubmissionPending)
		assert.Equal(t, int32(0), env.accounts.LoginCalls.Load())
	})

	t.Run("registered banner", func(t *testing.T) {
		env := newTestEnv(t)
		_, body := newBrowser(t, env.handler).get("/login?registered=true")
		assert.Contains(t, body, FlashRegistered)
	})
}

func TestEmployerDashboard_RequiresEmployer(t *testing.T) {
	t.Run("anonymous browser goes to login", func(t *testing.T) {
		env := newTestEnv(t)
		resp, _ := newBrowser(t, env.handler).get("/employer/dashboard")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, PathLogin, resp.Header.Get("Location"))
	})

	t.Run("seeker is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)
		b.login("seeker", "mock.user@example.com")

		resp, _ := b.get("/employer/dashboard")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRegister(t *testing.T) {
	t.Run("role selection first", func(t *testing.T) {
		env := newTestEnv(t)
		_, body := newBrowser(t, env.handler).get("/register")
		assert.Contains(t, body, `value="jobseeker"`)
		assert.Contains(t, body, `value="employer"`)
		assert.NotContains(t, body, `name="confirmPassword"`)
	})

	t.Run("plain role post redirects to the form", func(t *testing.T) {
		env := newTestEnv(t)
		resp, _ := newBrowser(t, env.handler).post("/register/role", url.Values{"select": {"employer"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/register?role=employer", resp.Header.Get("Location"))
	})

	t.Run("htmx role post swaps the card", func(t *testing.T) {
		env := newTestEnv(t)
		resp, body := newBrowser(t, env.handler).post("/register/role", url.Values{"select": {"employer"}}, "Hx-Request", "true")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `name="companyName"`)
		assert.NotContains(t, body, "<html")
	})

	t.Run("invalid form never reaches the API", func(t *testing.T) {
		env := newTestEnv(t)
		_, body := newBrowser(t, env.handler).post("/register", url.Values{
			"role":            {"jobseeker"},
			"name":            {"Jane"},
			"email":           {"not-an-email"},
			"password":        {"short"},
			"confirmPassword": {"other"},
		})
		assert.Contains(t, body, "Valid email is required")
		assert.Contains(t, body, "Password must be at least 8 characters")
		assert.Contains(t, body, "Passwords do not match")
		assert.NotContains(t, body, `value="short"`)
		assert.Equal(t, int32(0), env.accounts.RegisterCalls.Load())

		// The page script drops a message when its field is edited, keyed
		// by the field name.
		for _, field := range []string{"email", "password", "confirmPassword"} {
			assert.Contains(t, body, `data-error-for="`+field+`"`)
		}
		assert.NotContains(t, body, `data-error-for="name"`)
		assert.Contains(t, body, "data-protect-clipboard")
	})

	t.Run("success goes to login with the banner", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.RegisterFunc = func(_ context.Context, p registration.Payload) error {
			assert.Equal(t, domainauth.RoleEmployer, p.Role)
			assert.Equal(t, "Acme", p.CompanyName)
			return nil
		}
		b := newBrowser(t, env.handler)
		resp, _ := b.post("/register", url.Values{
			"role":            {"employer"},
			"companyName":     {"Acme"},
			"companyEmail":    {"hr@acme.co"},
			"companyWebsite":  {"https://acme.co"},
			"password":        {"secret123"},
			"confirmPassword": {"secret123"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login?registered=true", resp.Header.Get("Location"))
		assert.Equal(t, int32(1), env.accounts.RegisterCalls.Load())

		_, body := b.get(resp.Header.Get("Location"))
		assert.Contains(t, body, FlashRegistered)
	})

	t.Run("server failure shows its message", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.RegisterFunc = func(context.Context, registration.Payload) error {
			return domainauth.ServerMessage("Email already registered")
		}
		_, body := newBrowser(t, env.handler).post("/register", url.Values{
			"role":            {"jobseeker"},
			"name":            {"Jane"},
			"email":           {"jane@example.com"},
			"password":        {"secret123"},
			"confirmPassword": {"secret123"},
		})
		assert.Contains(t, body, "Email already registered")
		assert.Contains(t, body, `value="jane@example.com"`)
	})
}

func TestClipboard(t *testing.T) {
	env := newTestEnv(t)
	b := newBrowser(t, env.handler)

	resp, body := b.post("/register/clipboard", url.Values{"field": {"password"}, "action": {"paste"}}, "Hx-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "please type your password manually")
	assert.Contains(t, body, `data-expires-in="3000"`)

	resp, body = b.post("/register/clipboard", url.Values{"field": {"name"}, "action": {"paste"}}, "Hx-Request", "true")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)
}

func TestLogoutAndDelete(t *testing.T) {
	t.Run("logout clears the stored session", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)
		b.login("seeker", "mock.user@example.com")
		prefix := "client:" + b.cookie(ClientCookieName) + ":"
		require.Contains(t, env.state.Snapshot(), prefix+"user")

		resp, _ := b.post("/logout", nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, PathLogin, resp.Header.Get("Location"))
		assert.NotContains(t, env.state.Snapshot(), prefix+"user")
		assert.NotContains(t, env.state.Snapshot(), prefix+"token")
	})

	t.Run("delete success signs out and shows the banner on sign-up", func(t *testing.T) {
		env := newTestEnv(t)
		b := newBrowser(t, env.handler)
		b.login("seeker", "mock.user@example.com")

		resp, _ := b.post("/account/delete", nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, PathRegister, resp.Header.Get("Location"))
		assert.Equal(t, int32(1), env.accounts.DeleteCalls.Load())

		_, body := b.get(PathRegister)
		assert.Contains(t, body, FlashAccountDeleted)

		_, body = b.get(PathRegister)
		assert.NotContains(t, body, FlashAccountDeleted)
	})

	t.Run("delete failure keeps the session", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.DeleteAccountFunc = func(context.Context, string) error {
			return domainauth.Transport("network error", errors.New("connection reset"))
		}
		b := newBrowser(t, env.handler)
		b.login("seeker", "mock.user@example.com")

		resp, _ := b.post("/account/delete", nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, PathHome, resp.Header.Get("Location"))

		_, body := b.get("/")
		assert.Contains(t, body, FlashDeleteFailed)
		assert.Contains(t, body, "Mock User")
	})
}

func TestToggleTheme(t *testing.T) {
	env := newTestEnv(t)
	b := newBrowser(t, env.handler)

	resp, body := b.post("/theme/toggle", nil, "Hx-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="site-nav"`)

	var trig map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("Hx-Trigger")), &trig))
	assert.Equal(t, true, trig["themeChanged"]["dark"])
	assert.Equal(t, "dark", trig["themeChanged"]["rootClass"])
	assert.Equal(t, "true", env.state.Snapshot()["client:"+b.cookie(ClientCookieName)+":darkMode"])

	_, body = b.get("/")
	assert.Contains(t, body, `<html lang="en" class="dark">`)

	resp, _ = b.post("/theme/toggle", nil, "Referer", b.srv.URL+"/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, "false", env.state.Snapshot()["client:"+b.cookie(ClientCookieName)+":darkMode"])
}

func TestNavToggle(t *testing.T) {
	env := newTestEnv(t)
	b := newBrowser(t, env.handler)

	_, body := b.get("/nav?toggle=find-jobs", "Hx-Request", "true")
	assert.Contains(t, body, "Browse All Jobs")

	_, body = b.get("/nav?dropdown=find-jobs&toggle=find-jobs", "Hx-Request", "true")
	assert.NotContains(t, body, "Browse All Jobs")

	_, body = b.get("/nav?toggle=mobile", "Hx-Request", "true")
	assert.Contains(t, body, "mobile-open")
}

func TestCSRF_RejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)
	b := newBrowser(t, env.handler)
	b.get("/login")

	req, err := http.NewRequest(http.MethodPost, b.srv.URL+"/login",
		strings.NewReader(url.Values{"email": {"a@b.co"}, "password": {"secret123"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, _ := b.do(req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, int32(0), env.accounts.LoginCalls.Load())
}

func TestClientScopes_AreIsolated(t *testing.T) {
	env := newTestEnv(t)
	alice := newBrowser(t, env.handler)
	bob := newBrowser(t, env.handler)

	alice.login("seeker", "mock.user@example.com")

	_, body := bob.get("/")
	assert.NotContains(t, body, "Mock User")
	assert.NotEqual(t, alice.cookie(ClientCookieName), bob.cookie(ClientCookieName))
}

func TestHealthAndAPI(t *testing.T) {
	env := newTestEnv(t)
	b := newBrowser(t, env.handler)

	resp, body := b.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = b.get("/api/jobs?page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view listing.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	require.Len(t, view.Jobs, 2)
	assert.Equal(t, "Backend Engineer", view.Jobs[0].Title)

	_, body = b.get("/auth/status")
	var status AuthStatus
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.False(t, status.Authenticated)

	b.login("seeker", "mock.user@example.com")
	_, body = b.get("/auth/status")
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "mock.user@example.com", status.User.Email)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)
	resp, body := newBrowser(t, env.handler).get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "does not exist")
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)
	resp, body := newBrowser(t, env.handler).get("/static/js/app.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, "themeChanged")
}
