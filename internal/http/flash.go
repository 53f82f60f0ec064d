package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// SetFlash queues a banner for the next page render, surviving one redirect.
func SetFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	b, err := json.Marshal(viewmodel.Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the queued banner, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (viewmodel.Flash, bool) {
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return viewmodel.Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: FlashCookieName, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return viewmodel.Flash{}, false
	}
	var f viewmodel.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return viewmodel.Flash{}, false
	}
	return f, true
}
