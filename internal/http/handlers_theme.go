package httpx

import (
	"net/http"

	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
)

// ToggleTheme flips the stored theme. htmx callers get the refreshed nav and
// a themeChanged event carrying the root class; plain posts go back.
func (h *UIHandlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	c := h.clientFor(r)
	next, err := c.sessions.ToggleTheme(r.Context(), prefersDark(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "toggle theme", "error", err)
		if IsHTMX(r) {
			WriteAppError(w, err)
			return
		}
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, backTo(r, PathHome), http.StatusSeeOther)
		return
	}
	l := h.chrome(w, r, c, c.sessions.CurrentSession(r.Context()))
	HTMX(w).Trigger("themeChanged", map[string]any{
		"dark":      next == theme.Dark,
		"rootClass": next.RootClass(),
	})
	h.renderFragment(w, r, "nav", &l)
}

// Nav renders the navigation fragment for menu toggles. The query carries
// the current state (mobile, dropdown) and the control pressed (toggle):
// "mobile", a dropdown name, or "close".
func (h *UIHandlers) Nav(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := viewmodel.MenuState{MobileOpen: q.Get("mobile") == "true", Dropdown: q.Get("dropdown")}
	switch toggle := q.Get("toggle"); toggle {
	case "mobile":
		state = state.ToggleMobile()
	case "", "close":
		state = state.Close()
	default:
		state = state.ToggleDropdown(toggle)
	}

	c := h.clientFor(r)
	l := h.chrome(w, r, c, c.sessions.CurrentSession(r.Context()))
	l.Menu = state
	h.renderFragment(w, r, "nav", &l)
}
