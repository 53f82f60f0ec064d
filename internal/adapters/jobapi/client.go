// Package jobapi is the HTTP client for the remote job board API.
package jobapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "jobboard-ui"
	maxBodyBytes     = 1 << 20

	// msgNetwork is the message carried by transport failures.
	msgNetwork = "Network Error"
)

var (
	_ ports.AccountAPI = (*Client)(nil)
	_ ports.JobsAPI    = (*Client)(nil)
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client

	// CookieJar keeps cookies the API sets across calls. Only enable it for
	// single-user processes such as the CLI.
	CookieJar bool
}

// Client talks to the job board API.
type Client struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("jobapi: base URL is required")
	}
	u, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("jobapi: invalid base URL %q", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.CookieJar && httpClient.Jar == nil {
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("jobapi: cookie jar: %w", jarErr)
		}
		clone := *httpClient
		clone.Jar = jar
		httpClient = &clone
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{baseURL: u, userAgent: ua, httpClient: httpClient}, nil
}

// Cookies returns the cookies the jar holds for the API base URL. It is nil
// when the client has no jar.
func (c *Client) Cookies() []*http.Cookie {
	if c.httpClient.Jar == nil {
		return nil
	}
	return c.httpClient.Jar.Cookies(c.baseURL)
}

// SetCookies seeds the jar with cookies saved by an earlier process.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	if c.httpClient.Jar == nil || len(cookies) == 0 {
		return
	}
	c.httpClient.Jar.SetCookies(c.baseURL, cookies)
}

type response struct {
	status int
	body   []byte
}

func (c *Client) endpoint(p string, q url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + p
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, target string, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return response{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// statusError maps a non-2xx answer to an AuthError.
func statusError(r response) *domainauth.AuthError {
	msg := decodeEnvelope(r.body).message()
	ae := &domainauth.AuthError{
		Kind:    domainauth.ErrKindServerMessage,
		Message: msg,
		Cause:   fmt.Errorf("unexpected status %d", r.status),
	}
	if r.status == http.StatusUnauthorized || r.status == http.StatusForbidden {
		ae = domainauth.InvalidCredentials(msg)
	}
	ae.Detail = fmt.Sprintf("Request failed with status code %d", r.status)
	return ae
}

func ok(status int) bool { return status >= 200 && status < 300 }

// Login posts credentials to /login.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.IssuedSession, error) {
	r, err := c.do(ctx, c.httpClient, http.MethodPost, c.endpoint("/login", nil), creds)
	if err != nil {
		return domainauth.IssuedSession{}, domainauth.Transport(msgNetwork, err)
	}
	if !ok(r.status) {
		return domainauth.IssuedSession{}, statusError(r)
	}

	var payload loginResponse
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return domainauth.IssuedSession{}, &domainauth.AuthError{
			Kind:  domainauth.ErrKindServerMessage,
			Cause: fmt.Errorf("decode login response: %w", err),
		}
	}
	if payload.rejected() {
		return domainauth.IssuedSession{}, domainauth.InvalidCredentials(payload.message())
	}
	return payload.issued(), nil
}

// Register posts a registration payload to /register.
func (c *Client) Register(ctx context.Context, p registration.Payload) error {
	r, err := c.do(ctx, c.httpClient, http.MethodPost, c.endpoint("/register", nil), p)
	if err != nil {
		return domainauth.Transport(msgNetwork, err)
	}
	if !ok(r.status) {
		return statusError(r)
	}
	if env := decodeEnvelope(r.body); env.rejected() {
		return domainauth.ServerMessage(env.message())
	}
	return nil
}

// DeleteAccount deletes the signed-in account, authorizing with token.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	r, err := c.do(ctx, c.bearer(token), http.MethodDelete, c.endpoint("/account", nil), nil)
	if err != nil {
		return domainauth.Transport(msgNetwork, err)
	}
	if !ok(r.status) {
		return statusError(r)
	}
	if env := decodeEnvelope(r.body); env.rejected() {
		return domainauth.ServerMessage(env.message())
	}
	return nil
}

// bearer returns a client that sends token as a bearer credential.
func (c *Client) bearer(token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	clone := *c.httpClient
	clone.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   base,
	}
	return &clone
}

// ListJobs fetches one page of listings and returns the decoded body.
func (c *Client) ListJobs(ctx context.Context, page int) (any, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	r, err := c.do(ctx, c.httpClient, http.MethodGet, c.endpoint("/jobs", q), nil)
	if err != nil {
		return nil, &listing.FetchError{Cause: err}
	}
	if !ok(r.status) {
		return nil, &listing.FetchError{
			Status:  r.status,
			Message: decodeEnvelope(r.body).message(),
			Cause:   fmt.Errorf("unexpected status %d", r.status),
		}
	}

	var out any
	if err := json.Unmarshal(r.body, &out); err != nil {
		return nil, &listing.FetchError{Status: r.status, Cause: fmt.Errorf("decode jobs: %w", err)}
	}
	return out, nil
}
