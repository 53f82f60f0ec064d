package httpx

import (
	"net/http"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
)

// AuthStatus is the JSON shape of GET /auth/status.
type AuthStatus struct {
	Authenticated bool                 `json:"authenticated"`
	User          *domainauth.Identity `json:"user,omitempty"`
	Theme         string               `json:"theme"`
}

// AuthStatus reports the current client's session and theme.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	sess := c.sessions.CurrentSession(r.Context())
	out := AuthStatus{Theme: string(c.sessions.Theme(r.Context(), prefersDark(r)))}
	if id, ok := sess.Identity(); ok {
		out.Authenticated = true
		out.User = &id
	}
	WriteJSON(w, http.StatusOK, out)
}

// Jobs returns the normalized listing for ?page=N.
func (h *UIHandlers) Jobs(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Listings.Page(r.Context(), pageParam(r)))
}
