package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
	"github.com/Kabuna254/Job-App/internal/service"
)

// Form names used for submission guard keys.
const (
	formLogin    = "login"
	formRegister = "register"
)

// LoginPage is the data for the sign-in page.
type LoginPage struct {
	viewmodel.Layout
	Role  domainauth.Role
	Email string
	Error string
}

// LoginForm renders the sign-in page. ?registered=true adds the success banner.
func (h *UIHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	data := LoginPage{
		Layout: h.layout(w, r, c, c.sessions.CurrentSession(r.Context()), "Sign In", PageLogin),
		Role:   domainauth.RoleSeeker,
	}
	if r.URL.Query().Get("registered") == "true" {
		data.Flashes = append(data.Flashes, viewmodel.Flash{Kind: FlashSuccess, Message: FlashRegistered})
	}
	h.renderPage(w, r, &data)
}

// Login submits the sign-in form and redirects to the role's landing page.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	role, ok := domainauth.ParseRole(r.PostFormValue("role"))
	if !ok {
		role = domainauth.RoleSeeker
	}
	in := service.LoginInput{
		Role:     role,
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	c := h.clientFor(r)
	out, err := h.authFlow(c, formLogin).SubmitLogin(r.Context(), in)
	if err == nil && out.State == service.FlowSuccess {
		Redirect(w, r, out.Redirect)
		return
	}

	msg := out.Message
	if errors.Is(err, service.ErrSubmissionInFlight) {
		msg = FlashSubmissionPending
	}
	data := LoginPage{
		Layout: h.layout(w, r, c, out.Session, "Sign In", PageLogin),
		Role:   role,
		Email:  strings.TrimSpace(in.Email),
		Error:  msg,
	}
	h.renderPage(w, r, &data)
}

// RegisterPage is the data for the sign-up page. An empty Form.Role is the
// role selection step.
type RegisterPage struct {
	viewmodel.Layout
	Form        registration.Form
	Errors      registration.Errors
	SubmitError string
	// ClipboardTTL is how long the clipboard warning stays up, in milliseconds.
	ClipboardTTL int64
}

// SelectingRole reports whether the page shows the role cards.
func (p *RegisterPage) SelectingRole() bool { return p.Form.Role == "" }

// Employer reports whether the employer fields are shown.
func (p *RegisterPage) Employer() bool { return p.Form.Role == domainauth.UIRoleEmployer }

func (h *UIHandlers) registerPage(w http.ResponseWriter, r *http.Request, c client, form registration.Form) RegisterPage {
	return RegisterPage{
		Layout:       h.layout(w, r, c, c.sessions.CurrentSession(r.Context()), "Create your Account", PageRegister),
		Form:         form,
		ClipboardTTL: h.clipboardGuard().TTL().Milliseconds(),
	}
}

// RegisterForm renders role selection, or the form when ?role= is given.
func (h *UIHandlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	var form registration.Form
	if role := r.URL.Query().Get("role"); role != "" {
		form, _ = form.SelectRole(domainauth.ParseUIRole(role))
	}
	data := h.registerPage(w, r, h.clientFor(r), form)
	h.renderPage(w, r, &data)
}

// SelectRole switches the sign-up form to the posted role, discarding any
// errors. An empty role goes back to role selection and clears every field.
func (h *UIHandlers) SelectRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	form := formFromRequest(r)
	raw := strings.TrimSpace(r.PostFormValue("select"))
	var errs registration.Errors
	if raw == "" {
		form = form.Reset()
	} else {
		form, errs = form.SelectRole(domainauth.ParseUIRole(raw))
	}

	if !IsHTMX(r) {
		target := PathRegister
		if form.Role != "" {
			target += "?role=" + string(form.Role)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	data := h.registerPage(w, r, h.clientFor(r), form)
	data.Errors = errs
	h.renderFragment(w, r, "register-card", &data)
}

// Register validates and submits the sign-up form. Invalid forms are shown
// again with per-field messages and never reach the API.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	form := formFromRequest(r)
	c := h.clientFor(r)

	out, err := h.authFlow(c, formRegister).SubmitRegistration(r.Context(), form)
	if err == nil && out.Registered {
		Redirect(w, r, out.Redirect)
		return
	}

	// Passwords are never echoed back into the page.
	form.Password, form.ConfirmPassword = "", ""
	data := h.registerPage(w, r, c, form)
	data.Errors = out.Errors
	data.SubmitError = out.Message
	if errors.Is(err, service.ErrSubmissionInFlight) {
		data.SubmitError = FlashSubmissionPending
	}
	h.renderPage(w, r, &data)
}

func formFromRequest(r *http.Request) registration.Form {
	return registration.Form{
		Role:            authRoleField(r.PostFormValue("role")),
		Name:            r.PostFormValue(registration.FieldName),
		Email:           r.PostFormValue(registration.FieldEmail),
		Password:        r.PostFormValue(registration.FieldPassword),
		ConfirmPassword: r.PostFormValue(registration.FieldConfirmPassword),
		CompanyName:     r.PostFormValue(registration.FieldCompanyName),
		CompanyEmail:    r.PostFormValue(registration.FieldCompanyEmail),
		CompanyWebsite:  r.PostFormValue(registration.FieldCompanyWebsite),
	}
}

// authRoleField keeps an empty role empty so the role step survives a round trip.
func authRoleField(v string) domainauth.UIRole {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return domainauth.ParseUIRole(v)
}

func (h *UIHandlers) clipboardGuard() *service.ClipboardGuard {
	return service.NewClipboardGuard(h.ClipboardTTL, h.Now)
}

// ClipboardWarning is the data for the clipboard warning fragment.
type ClipboardWarning struct {
	Message string
	TTL     time.Duration
}

// TTLMillis is the display time for the page script.
func (c ClipboardWarning) TTLMillis() int64 { return c.TTL.Milliseconds() }

// Clipboard reports a copy, cut, or paste on a sign-up field. Blocked actions
// answer with the warning fragment; anything else gets 204 and no swap.
func (h *UIHandlers) Clipboard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	field := r.PostFormValue("field")
	action, ok := service.ParseClipboardAction(r.PostFormValue("action"))
	guard := h.clipboardGuard()
	if !ok || !guard.Intercept(field, action) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	msg, active := guard.Warning()
	if !active {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.renderFragment(w, r, "clipboard-warning", ClipboardWarning{Message: msg, TTL: guard.TTL()})
}

// Logout clears the session and returns to the sign-in page.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	if err := c.sessions.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout", "error", err)
	}
	Redirect(w, r, PathLogin)
}

// DeleteAccount deletes the account. Success signs out and goes to sign-up;
// failure keeps the session and returns to the current page with a banner.
func (h *UIHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	if err := c.sessions.DeleteAccount(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "delete account", "error", err)
		SetFlash(w, r, FlashError, FlashDeleteFailed)
		Redirect(w, r, backTo(r, PathHome))
		return
	}
	SetFlash(w, r, FlashSuccess, FlashAccountDeleted)
	Redirect(w, r, PathRegister)
}
