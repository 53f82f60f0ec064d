package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// IsBoosted reports whether the request came from an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Boosted"), "true")
}

// WantsPartial reports whether only a fragment should be rendered. Boosted
// navigations swap the whole body and get the full layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// HXTarget returns the id of the element being updated.
func HXTarget(r *http.Request) string { return r.Header.Get("Hx-Target") }

// SetHXRedirect instructs htmx to navigate the browser to url.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// HTMXResponse builds htmx response headers fluently.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse { return &HTMXResponse{w: w} }

// Redirect sets Hx-Redirect and writes 204. Nothing else may be written after it.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger fires a client-side event after the swap. A nil payload sends true.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	var value any = true
	if payload != nil {
		value = payload
	}
	b, err := json.Marshal(map[string]any{event: value})
	if err != nil {
		b = []byte(`{"` + event + `":true}`)
	}
	h.w.Header().Set("Hx-Trigger", string(b))
	return h
}

// Reswap overrides the hx-swap strategy of the triggering element.
func (h *HTMXResponse) Reswap(strategy string) *HTMXResponse {
	h.w.Header().Set("Hx-Reswap", strategy)
	return h
}

// Redirect sends the browser to url: Hx-Redirect for htmx requests, 303 for
// plain form posts.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
