package auth

// Package auth contains domain-level types for identities and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
)

// Role is the backend-facing role vocabulary.
// Keep string form for easy persistence and JSON payloads.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleEmployer
}

// ParseRole accepts backend and UI spellings ("jobseeker" maps to seeker).
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleSeeker), string(UIRoleJobseeker):
		return RoleSeeker, true
	case string(RoleEmployer):
		return RoleEmployer, true
	default:
		return "", false
	}
}

// UIRole is the role vocabulary used by the registration form.
type UIRole string

const (
	UIRoleJobseeker UIRole = "jobseeker"
	UIRoleEmployer  UIRole = "employer"
)

// BackendRole maps the form vocabulary onto the API vocabulary.
// Anything that is not employer registers as a seeker.
func (r UIRole) BackendRole() Role {
	if r == UIRoleEmployer {
		return RoleEmployer
	}
	return RoleSeeker
}

// ParseUIRole returns the form role for s, defaulting to jobseeker.
func ParseUIRole(s string) UIRole {
	if strings.EqualFold(strings.TrimSpace(s), string(UIRoleEmployer)) {
		return UIRoleEmployer
	}
	return UIRoleJobseeker
}

// Identity is the persisted record of the signed-in user.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// Label is what the navigation shows for the user: name, else email.
func (i Identity) Label() string {
	if n := strings.TrimSpace(i.Name); n != "" {
		return n
	}
	return i.Email
}

// Session is either anonymous or authenticated with a valid identity.
// The zero value is anonymous.
type Session struct {
	identity *Identity
}

// Anonymous returns the signed-out session.
func Anonymous() Session { return Session{} }

// Authenticated returns a session for id. An identity without an email or
// with an unknown role yields an anonymous session.
func Authenticated(id Identity) Session {
	if strings.TrimSpace(id.Email) == "" || !id.Role.Valid() {
		return Session{}
	}
	return Session{identity: &id}
}

// Present reports whether the session carries an identity.
func (s Session) Present() bool { return s.identity != nil }

// Identity returns the identity and true when authenticated.
func (s Session) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// HasRole reports whether the session is authenticated with role r.
func (s Session) HasRole(r Role) bool {
	return s.identity != nil && s.identity.Role == r
}

// Match dispatches on the variant and returns the chosen branch's result.
func Match[T any](s Session, anonymous func() T, authenticated func(Identity) T) T {
	if s.identity == nil {
		return anonymous()
	}
	return authenticated(*s.identity)
}

// Credentials are the inputs to a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// IssuedSession is what the API hands back after a successful login.
type IssuedSession struct {
	Identity Identity
	Token    string
}
