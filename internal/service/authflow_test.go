package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/mocks"
	authmocks "github.com/Kabuna254/Job-App/internal/mocks/auth"
	"github.com/Kabuna254/Job-App/internal/observability/metrics"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFlow(api *authmocks.MockAccountAPI) (*AuthFlow, *authmocks.MemoryKVStore) {
	kv := authmocks.NewMemoryKVStore()
	store := NewSessionStore(SessionStoreOptions{KV: kv, API: api})
	return NewAuthFlow(AuthFlowOptions{Sessions: store, API: api}), kv
}

func TestAuthFlow_SubmitLoginRoutesByRole(t *testing.T) {
	tests := []struct {
		name     string
		role     domainauth.Role
		redirect string
	}{
		{"seeker lands home", domainauth.RoleSeeker, PathDefaultLanding},
		{"employer lands on dashboard", domainauth.RoleEmployer, PathEmployerLanding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := authmocks.NewMockAccountAPI()
			var got domainauth.Credentials
			api.LoginFunc = func(_ context.Context, c domainauth.Credentials) (domainauth.IssuedSession, error) {
				got = c
				return domainauth.IssuedSession{Identity: domainauth.Identity{Email: c.Email, Role: tt.role}}, nil
			}
			flow, _ := newFlow(api)

			out, err := flow.SubmitLogin(context.Background(), LoginInput{Role: tt.role, Email: "  Jane@Example.COM ", Password: "Secret123"})
			require.NoError(t, err)
			assert.Equal(t, FlowSuccess, out.State)
			assert.Equal(t, tt.redirect, out.Redirect)
			assert.Empty(t, out.Message)
			assert.Equal(t, "jane@example.com", got.Email)
			assert.Equal(t, "Secret123", got.Password)
			assert.Equal(t, FlowSuccess, flow.State())
		})
	}
}

func TestAuthFlow_SubmitLoginFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", domainauth.InvalidCredentials("Account locked"), "Account locked"},
		{"rejection fallback", domainauth.InvalidCredentials(""), MsgInvalidCredentials},
		{"server error message", domainauth.ServerMessage("Maintenance window"), "Maintenance window"},
		{"transport", domainauth.Transport("Network Error", errors.New("refused")), MsgUnexpected},
		{"untyped", errors.New("boom"), MsgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := authmocks.NewMockAccountAPI()
			api.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.IssuedSession, error) {
				return domainauth.IssuedSession{}, tt.err
			}
			flow, kv := newFlow(api)

			out, err := flow.SubmitLogin(context.Background(), LoginInput{Email: "a@b.co", Password: "x"})
			require.NoError(t, err)
			assert.Equal(t, FlowFailed, out.State)
			assert.Equal(t, tt.want, out.Message)
			assert.False(t, out.Session.Present())
			assert.Empty(t, kv.Snapshot())
		})
	}
	assert.NotEqual(t, MsgInvalidCredentials, MsgUnexpected)
}

func TestAuthFlow_SecondLoginWhileInFlightIsIgnored(t *testing.T) {
	api := authmocks.NewMockAccountAPI()
	entered := make(chan struct{})
	release := make(chan struct{})
	api.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.IssuedSession, error) {
		close(entered)
		<-release
		return api.DefaultSession, nil
	}
	flow, _ := newFlow(api)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	var first LoginOutcome
	go func() {
		defer wg.Done()
		first, _ = flow.SubmitLogin(ctx, LoginInput{Email: "a@b.co", Password: "Secret123"})
	}()

	<-entered
	assert.Equal(t, FlowSubmitting, flow.State())
	_, err := flow.SubmitLogin(ctx, LoginInput{Email: "a@b.co", Password: "Secret123"})
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), api.LoginCalls.Load())
	assert.Equal(t, FlowSuccess, first.State)
}

func TestAuthFlow_ResubmitAfterFailure(t *testing.T) {
	api := authmocks.NewMockAccountAPI()
	calls := 0
	api.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.IssuedSession, error) {
		calls++
		if calls == 1 {
			return domainauth.IssuedSession{}, domainauth.InvalidCredentials("")
		}
		return api.DefaultSession, nil
	}
	flow, _ := newFlow(api)
	ctx := context.Background()

	out, err := flow.SubmitLogin(ctx, LoginInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, FlowFailed, out.State)

	out, err = flow.SubmitLogin(ctx, LoginInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, FlowSuccess, out.State)
}

func TestAuthFlow_DistributedGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mocks.NewMockSubmissionGuard(ctrl)
	api := authmocks.NewMockAccountAPI()
	store := NewSessionStore(SessionStoreOptions{KV: authmocks.NewMemoryKVStore(), API: api})
	flow := NewAuthFlow(AuthFlowOptions{Sessions: store, API: api, Guard: guard, GuardKey: "client-1:login"})

	guard.EXPECT().TryAcquire(gomock.Any(), "client-1:login", DefaultSubmissionLease).Return(func() {}, false, nil)

	_, err := flow.SubmitLogin(context.Background(), LoginInput{Email: "a@b.co"})
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, FlowIdle, flow.State())
	assert.Zero(t, api.LoginCalls.Load())

	released := false
	guard.EXPECT().TryAcquire(gomock.Any(), "client-1:login", DefaultSubmissionLease).Return(func() { released = true }, true, nil)
	out, err := flow.SubmitLogin(context.Background(), LoginInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, FlowSuccess, out.State)
	assert.True(t, released)
}

func TestAuthFlow_GuardErrorFallsBackToLocalCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mocks.NewMockSubmissionGuard(ctrl)
	api := authmocks.NewMockAccountAPI()
	store := NewSessionStore(SessionStoreOptions{KV: authmocks.NewMemoryKVStore(), API: api})
	flow := NewAuthFlow(AuthFlowOptions{Sessions: store, API: api, Guard: guard, GuardKey: "k"})

	guard.EXPECT().TryAcquire(gomock.Any(), "k", gomock.Any()).Return(nil, false, errors.New("redis down"))
	out, err := flow.SubmitLogin(context.Background(), LoginInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, FlowSuccess, out.State)
}

func validRegistration() registration.Form {
	return registration.Form{
		Role:            "jobseeker",
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}
}

func TestAuthFlow_InvalidRegistrationNeverCallsAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	flow := NewAuthFlow(AuthFlowOptions{API: api})

	form := validRegistration()
	form.Password, form.ConfirmPassword = "short", "short"

	out, err := flow.SubmitRegistration(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Password must be at least 8 characters", out.Errors[registration.FieldPassword])
	assert.Equal(t, FlowIdle, out.State)
	assert.False(t, out.Registered)
}

func TestAuthFlow_SubmitRegistrationPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	flow := NewAuthFlow(AuthFlowOptions{API: api})

	form := registration.Form{
		Role:            "employer",
		Name:            "stale seeker name",
		CompanyName:     "Acme",
		CompanyEmail:    "hr@acme.co",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}
	api.EXPECT().Register(gomock.Any(), registration.Payload{
		Role:         domainauth.RoleEmployer,
		Email:        "hr@acme.co",
		Password:     "Secret123",
		CompanyName:  "Acme",
		CompanyEmail: "hr@acme.co",
	}).Return(nil)

	out, err := flow.SubmitRegistration(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, out.Registered)
	assert.Equal(t, PathLoginRegistered, out.Redirect)
	assert.Equal(t, FlowSuccess, flow.State())
}

func TestAuthFlow_RegistrationFailurePrecedence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", domainauth.ServerMessage("Email already registered"), "Email already registered"},
		{"exception message", domainauth.Transport("Network Error", errors.New("refused")), "Network Error"},
		{"status without body", &domainauth.AuthError{Kind: domainauth.ErrKindServerMessage, Detail: "Request failed with status code 500", Cause: errors.New("status 500")}, "Request failed with status code 500"},
		{"server message beats status", &domainauth.AuthError{Kind: domainauth.ErrKindServerMessage, Message: "Email taken", Detail: "Request failed with status code 409"}, "Email taken"},
		{"plain rejection", domainauth.ServerMessage(""), MsgRegistrationFailed},
		{"http failure without message", &domainauth.AuthError{Kind: domainauth.ErrKindServerMessage, Cause: errors.New("status 500")}, MsgRegistrationRetry},
		{"transport without message", domainauth.Transport("", errors.New("timeout")), MsgRegistrationRetry},
		{"untyped", errors.New("boom"), MsgRegistrationRetry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := authmocks.NewMockAccountAPI()
			api.RegisterFunc = func(context.Context, registration.Payload) error { return tt.err }
			flow := NewAuthFlow(AuthFlowOptions{API: api})

			out, err := flow.SubmitRegistration(context.Background(), validRegistration())
			require.NoError(t, err)
			assert.Equal(t, FlowFailed, out.State)
			assert.Equal(t, tt.want, out.Message)
			assert.False(t, out.Registered)
		})
	}
}

func TestClipboardGuard_PasteLeavesPasswordAndWarningExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	g := NewClipboardGuard(0, clock)

	assert.True(t, g.Intercept(registration.FieldPassword, ClipboardPaste))

	msg, ok := g.Warning()
	require.True(t, ok)
	assert.Equal(t, ClipboardWarning, msg)

	now = now.Add(2999 * time.Millisecond)
	_, ok = g.Warning()
	assert.True(t, ok)

	now = now.Add(time.Millisecond)
	_, ok = g.Warning()
	assert.False(t, ok, "warning clears after 3 seconds")
}

func TestClipboardGuard_Actions(t *testing.T) {
	g := NewClipboardGuard(time.Second, nil)
	for _, a := range []ClipboardAction{ClipboardCopy, ClipboardPaste, ClipboardCut} {
		assert.True(t, g.Intercept(registration.FieldConfirmPassword, a))
		assert.True(t, g.Intercept(registration.FieldPassword, a))
	}
	assert.False(t, g.Intercept(registration.FieldEmail, ClipboardPaste))
	assert.False(t, g.Intercept(registration.FieldPassword, "drop"))
	assert.False(t, g.Intercept(registration.FieldName, ClipboardCut))
}

func TestClipboardGuard_NoWarningInitially(t *testing.T) {
	_, ok := NewClipboardGuard(0, nil).Warning()
	assert.False(t, ok)
}

func TestAuthFlow_EmitsSubmissionMetrics(t *testing.T) {
	var rec statsd.Recorder
	api := authmocks.NewMockAccountAPI()
	store := NewSessionStore(SessionStoreOptions{KV: authmocks.NewMemoryKVStore(), API: api})
	flow := NewAuthFlow(AuthFlowOptions{Sessions: store, API: api, Metrics: &rec})

	_, err := flow.SubmitLogin(context.Background(), LoginInput{Role: domainauth.RoleSeeker, Email: "a@b.co", Password: "x"})
	require.NoError(t, err)

	api.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.IssuedSession, error) {
		return domainauth.IssuedSession{}, domainauth.InvalidCredentials("")
	}
	_, err = flow.SubmitLogin(context.Background(), LoginInput{Role: domainauth.RoleSeeker, Email: "a@b.co", Password: "x"})
	require.NoError(t, err)

	_, err = flow.SubmitRegistration(context.Background(), registration.Form{Role: domainauth.UIRoleEmployer})
	require.NoError(t, err)

	points := rec.Named(metrics.AuthSubmit)
	require.Len(t, points, 3)
	assert.Equal(t, metrics.ResultSuccess, points[0].Tags["result"])
	assert.Equal(t, "seeker", points[0].Tags["role"])
	assert.Equal(t, metrics.ResultFailed, points[1].Tags["result"])
	assert.Equal(t, "auth_invalid_credentials", points[1].Tags["error_class"])
	assert.Equal(t, "register", points[2].Tags["form"])
	assert.Equal(t, metrics.ResultInvalid, points[2].Tags["result"])
	assert.Len(t, rec.Named(metrics.AuthDuration), 2)
}
