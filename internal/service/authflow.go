package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/observability/metrics"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// User-facing failure messages.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUnexpected         = "An unexpected error occurred. Please try again."
	MsgRegistrationFailed = "Registration failed"
	MsgRegistrationRetry  = "Registration failed. Please try again."
)

// Landing paths chosen after a submission settles.
const (
	PathEmployerLanding = "/employer/dashboard"
	PathDefaultLanding  = "/"
	PathLoginRegistered = "/login?registered=true"
)

// DefaultSubmissionLease bounds how long a distributed submission lock is held.
const DefaultSubmissionLease = 30 * time.Second

// ErrSubmissionInFlight is returned when a form is submitted again before the
// previous submission settled. The second attempt makes no API call.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// FlowState is the lifecycle of one form submission.
type FlowState int32

const (
	FlowIdle FlowState = iota
	FlowSubmitting
	FlowSuccess
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowSubmitting:
		return "submitting"
	case FlowSuccess:
		return "success"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionLogin is the part of SessionStore the login flow needs.
type SessionLogin interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)
	CurrentSession(ctx context.Context) domainauth.Session
}

// AuthFlowOptions groups dependencies for AuthFlow.
type AuthFlowOptions struct {
	Sessions SessionLogin
	API      ports.AccountAPI

	// Guard optionally extends the in-flight check beyond this instance,
	// keyed by GuardKey (for example the client scope and form name).
	Guard      ports.SubmissionGuard
	GuardKey   string
	GuardLease time.Duration

	Logger  *slog.Logger
	Metrics statsd.Sink
}

// AuthFlow drives login and registration submissions for one form instance.
// Only the first of overlapping submissions reaches the API.
type AuthFlow struct {
	state atomic.Int32

	sessions SessionLogin
	api      ports.AccountAPI
	guard    ports.SubmissionGuard
	guardKey string
	lease    time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewAuthFlow constructs an AuthFlow in the Idle state.
func NewAuthFlow(opts AuthFlowOptions) *AuthFlow {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lease := opts.GuardLease
	if lease <= 0 {
		lease = DefaultSubmissionLease
	}
	return &AuthFlow{
		sessions: opts.Sessions,
		api:      opts.API,
		guard:    opts.Guard,
		guardKey: opts.GuardKey,
		lease:    lease,
		logger:   logger.With("component", "auth_flow"),
		metrics:  opts.Metrics,
	}
}

// State returns the current submission state.
func (f *AuthFlow) State() FlowState { return FlowState(f.state.Load()) }

// begin moves the flow into Submitting. The returned func settles the flow.
func (f *AuthFlow) begin(ctx context.Context) (func(ok bool), error) {
	var prev int32
	for {
		prev = f.state.Load()
		if FlowState(prev) == FlowSubmitting {
			return nil, ErrSubmissionInFlight
		}
		if f.state.CompareAndSwap(prev, int32(FlowSubmitting)) {
			break
		}
	}

	release := func() {}
	if f.guard != nil && f.guardKey != "" {
		rel, ok, err := f.guard.TryAcquire(ctx, f.guardKey, f.lease)
		switch {
		case err != nil:
			// Local state still serializes this instance.
			f.logger.WarnContext(ctx, "submission guard unavailable", "key", f.guardKey, "error", err)
		case !ok:
			f.state.Store(prev)
			return nil, ErrSubmissionInFlight
		default:
			release = rel
		}
	}

	return func(ok bool) {
		release()
		if ok {
			f.state.Store(int32(FlowSuccess))
		} else {
			f.state.Store(int32(FlowFailed))
		}
	}, nil
}

// LoginInput is the raw login form.
type LoginInput struct {
	Role     domainauth.Role
	Email    string
	Password string
}

// LoginOutcome is the settled result of a login submission.
type LoginOutcome struct {
	State    FlowState
	Session  domainauth.Session
	Redirect string
	Message  string
}

// SubmitLogin signs in with in. Failures are reported in the outcome's
// Message; the only error is ErrSubmissionInFlight.
func (f *AuthFlow) SubmitLogin(ctx context.Context, in LoginInput) (LoginOutcome, error) {
	settle, err := f.begin(ctx)
	if err != nil {
		f.emit("login", string(in.Role), metrics.ResultInFlight, 0, nil)
		return LoginOutcome{State: FlowSubmitting}, err
	}

	start := time.Now()
	creds := domainauth.Credentials{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
		Role:     in.Role,
	}
	if _, err := f.sessions.Login(ctx, creds); err != nil {
		settle(false)
		f.logger.InfoContext(ctx, "login failed", "error", err)
		f.emit("login", string(in.Role), metrics.ResultFailed, time.Since(start), err)
		return LoginOutcome{State: FlowFailed, Session: domainauth.Anonymous(), Message: loginFailureMessage(err)}, nil
	}

	sess := f.sessions.CurrentSession(ctx)
	settle(true)
	f.emit("login", string(in.Role), metrics.ResultSuccess, time.Since(start), nil)
	return LoginOutcome{State: FlowSuccess, Session: sess, Redirect: landingFor(sess)}, nil
}

func landingFor(sess domainauth.Session) string {
	if sess.HasRole(domainauth.RoleEmployer) {
		return PathEmployerLanding
	}
	return PathDefaultLanding
}

func loginFailureMessage(err error) string {
	var ae *domainauth.AuthError
	if !errors.As(err, &ae) {
		return MsgUnexpected
	}
	switch ae.Kind {
	case domainauth.ErrKindInvalidCredentials:
		if ae.Message != "" {
			return ae.Message
		}
		return MsgInvalidCredentials
	case domainauth.ErrKindServerMessage:
		if ae.Message != "" {
			return ae.Message
		}
		return MsgUnexpected
	default:
		return MsgUnexpected
	}
}

// RegistrationOutcome is the settled result of a registration submission.
type RegistrationOutcome struct {
	State      FlowState
	Errors     registration.Errors
	Registered bool
	Redirect   string
	Message    string
}

// SubmitRegistration validates form and, when it is clean, registers the
// account. Invalid forms never reach the API and leave the state unchanged.
func (f *AuthFlow) SubmitRegistration(ctx context.Context, form registration.Form) (RegistrationOutcome, error) {
	role := string(form.Role)
	if errs := registration.Validate(form); !errs.Empty() {
		f.emit("register", role, metrics.ResultInvalid, 0, nil)
		return RegistrationOutcome{State: f.State(), Errors: errs}, nil
	}

	settle, err := f.begin(ctx)
	if err != nil {
		f.emit("register", role, metrics.ResultInFlight, 0, nil)
		return RegistrationOutcome{State: FlowSubmitting}, err
	}

	start := time.Now()
	if err := f.api.Register(ctx, registration.BuildPayload(form)); err != nil {
		settle(false)
		f.logger.InfoContext(ctx, "registration failed", "role", form.Role, "error", err)
		f.emit("register", role, metrics.ResultFailed, time.Since(start), err)
		return RegistrationOutcome{State: FlowFailed, Message: registrationFailureMessage(err)}, nil
	}

	settle(true)
	f.emit("register", role, metrics.ResultSuccess, time.Since(start), nil)
	return RegistrationOutcome{State: FlowSuccess, Registered: true, Redirect: PathLoginRegistered}, nil
}

func (f *AuthFlow) emit(form, role, result string, d time.Duration, err error) {
	metrics.EmitAuthSubmission(f.metrics, metrics.AuthSubmission{
		Form:     form,
		Role:     role,
		Result:   result,
		Duration: d,
		Err:      err,
	})
}

// registrationFailureMessage prefers the server message, then the error's
// own description, then a generic fallback.
func registrationFailureMessage(err error) string {
	var ae *domainauth.AuthError
	if !errors.As(err, &ae) {
		return MsgRegistrationRetry
	}
	if ae.Message != "" {
		return ae.Message
	}
	if ae.Detail != "" {
		return ae.Detail
	}
	if ae.Kind == domainauth.ErrKindTransport || ae.Cause != nil {
		return MsgRegistrationRetry
	}
	return MsgRegistrationFailed
}
