package jobapi

import (
	"encoding/json"
	"strings"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// envelope is the common {success, message} wrapper the API answers with.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) message() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return strings.TrimSpace(e.Error)
}

// rejected reports an explicit success:false.
func (e envelope) rejected() bool { return e.Success != nil && !*e.Success }

type userPayload struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Role        string `json:"role"`
}

type sessionPayload struct {
	User  *userPayload `json:"user"`
	Token string       `json:"token"`
}

// loginResponse accepts the session nested under "session" or at the top level.
type loginResponse struct {
	envelope
	Session *sessionPayload `json:"session"`
	User    *userPayload    `json:"user"`
	Token   string          `json:"token"`
}

func (r loginResponse) issued() domainauth.IssuedSession {
	var (
		u   *userPayload
		tok string
	)
	if r.Session != nil {
		u, tok = r.Session.User, r.Session.Token
	}
	if u == nil {
		u = r.User
	}
	if tok == "" {
		tok = r.Token
	}
	if u == nil {
		return domainauth.IssuedSession{Token: tok}
	}

	role, _ := domainauth.ParseRole(u.Role)
	name := u.Name
	if name == "" {
		name = u.CompanyName
	}
	return domainauth.IssuedSession{
		Identity: domainauth.Identity{
			Email: strings.ToLower(strings.TrimSpace(u.Email)),
			Name:  name,
			Role:  role,
		},
		Token: tok,
	}
}

func decodeEnvelope(body []byte) envelope {
	var env envelope
	_ = json.Unmarshal(body, &env)
	return env
}
