package service

import (
	"sync"
	"time"

	"github.com/Kabuna254/Job-App/internal/domain/registration"
)

// ClipboardWarning is shown after a blocked clipboard action.
const ClipboardWarning = "For security, please type your password manually"

// DefaultClipboardWarningTTL is how long the warning stays visible.
const DefaultClipboardWarningTTL = 3 * time.Second

// ClipboardAction is a clipboard event on a form field.
type ClipboardAction string

const (
	ClipboardCopy  ClipboardAction = "copy"
	ClipboardPaste ClipboardAction = "paste"
	ClipboardCut   ClipboardAction = "cut"
)

// ParseClipboardAction returns the action for s and whether it is known.
func ParseClipboardAction(s string) (ClipboardAction, bool) {
	switch a := ClipboardAction(s); a {
	case ClipboardCopy, ClipboardPaste, ClipboardCut:
		return a, true
	default:
		return "", false
	}
}

// ClipboardGuard blocks clipboard actions on password fields and keeps a
// short-lived warning after each block. This only shapes form behavior; it
// does not stop clipboard access outside the form.
type ClipboardGuard struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	until time.Time
}

// NewClipboardGuard creates a guard. A zero ttl uses DefaultClipboardWarningTTL
// and a nil now uses time.Now.
func NewClipboardGuard(ttl time.Duration, now func() time.Time) *ClipboardGuard {
	if ttl <= 0 {
		ttl = DefaultClipboardWarningTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ClipboardGuard{ttl: ttl, now: now}
}

// Protected reports whether clipboard actions on field are blocked.
func Protected(field string) bool {
	return field == registration.FieldPassword || field == registration.FieldConfirmPassword
}

// Intercept reports whether action on field is blocked, starting the warning
// when it is.
func (g *ClipboardGuard) Intercept(field string, action ClipboardAction) bool {
	if !Protected(field) {
		return false
	}
	if _, ok := ParseClipboardAction(string(action)); !ok {
		return false
	}
	g.mu.Lock()
	g.until = g.now().Add(g.ttl)
	g.mu.Unlock()
	return true
}

// Warning returns the warning text while it is active.
func (g *ClipboardGuard) Warning() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.until.IsZero() || !g.now().Before(g.until) {
		return "", false
	}
	return ClipboardWarning, true
}

// TTL is how long each warning lasts.
func (g *ClipboardGuard) TTL() time.Duration { return g.ttl }
