package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
	mocks "github.com/Kabuna254/Job-App/internal/mocks/auth"
)

type fakeJar struct{ cookies []*http.Cookie }

func (j *fakeJar) Cookies() []*http.Cookie     { return j.cookies }
func (j *fakeJar) SetCookies(c []*http.Cookie) { j.cookies = append(j.cookies, c...) }

func TestPersistAndRestoreCookies(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryKVStore()
	kv := kvstore.NewScoped(store, "work")

	src := &fakeJar{cookies: []*http.Cookie{{Name: "sid", Value: "abc", Path: "/api"}}}
	require.NoError(t, persistCookies(ctx, kv, src))
	assert.JSONEq(t, `[{"name":"sid","value":"abc"}]`, store.Snapshot()["client:work:cookies"])

	dst := &fakeJar{}
	require.NoError(t, restoreCookies(ctx, kv, dst))
	require.Len(t, dst.cookies, 1)
	assert.Equal(t, "sid", dst.cookies[0].Name)
	assert.Equal(t, "abc", dst.cookies[0].Value)

	require.NoError(t, persistCookies(ctx, kv, &fakeJar{}))
	assert.NotContains(t, store.Snapshot(), "client:work:cookies", "an empty jar clears the saved cookies")
}

func TestRestoreCookies_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryKVStore()
	kv := kvstore.NewScoped(store, "work")
	require.NoError(t, kv.Set(ctx, cookieKey, "{not json"))

	jar := &fakeJar{}
	require.NoError(t, restoreCookies(ctx, kv, jar))
	assert.Empty(t, jar.cookies)
	assert.NotContains(t, store.Snapshot(), "client:work:cookies")
}

// Each CLI invocation is its own process, so a cookie set during login must
// come back from the profile on the next run.
func TestOpenCommandContext_CookiesSurviveRuns(t *testing.T) {
	var deleteCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "server-session", Path: "/", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"email": "jane@example.com", "name": "Jane", "role": "jobseeker"},
			"token":   "tok",
		})
	})
	mux.HandleFunc("DELETE /api/account", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sid"); err == nil {
			deleteCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.AppConfig{}
	cfg.API.URL = srv.URL + "/api"
	cfg.API.Timeout = 5 * time.Second
	cfg.Auth.SubmissionLease = time.Second
	cfg.Storage.TTL = time.Hour
	cfg.CLI.Profile = "work"
	cfg.CLI.ProfilePath = filepath.Join(t.TempDir(), "profile.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	first, closeFirst, err := openCommandContext(ctx, cfg, logger)
	require.NoError(t, err)
	first.Out = &bytes.Buffer{}
	require.NoError(t, runLogin(first, []string{"-email", "jane@example.com", "-password", "Secret123"}))
	require.NoError(t, closeFirst())

	second, closeSecond, err := openCommandContext(ctx, cfg, logger)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	second.Out = out
	second.In = strings.NewReader("")
	require.NoError(t, runDeleteAccount(second, []string{"-yes"}))
	require.NoError(t, closeSecond())

	assert.Equal(t, "server-session", deleteCookie)
	assert.Contains(t, out.String(), "Account deleted")
}
