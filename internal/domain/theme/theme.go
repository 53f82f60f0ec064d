// Package theme models the light/dark display preference.
package theme

import (
	"strings"
	"sync"
)

// Preference is the resolved display theme.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// PersistedKey is the store key holding the explicit preference.
const PersistedKey = "darkMode"

// Persisted returns the stored form of p: the literal "true" or "false".
func (p Preference) Persisted() string {
	if p == Dark {
		return "true"
	}
	return "false"
}

// Toggle returns the opposite preference.
func (p Preference) Toggle() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// RootClass is the class applied to the document root for p.
func (p Preference) RootClass() string {
	if p == Dark {
		return "dark"
	}
	return ""
}

// Resolve picks the theme from a stored value and the OS signal. A stored
// "true" or "false" wins; anything else defers to the OS, then to light.
func Resolve(stored string, osPrefersDark bool) Preference {
	switch strings.TrimSpace(stored) {
	case "true":
		return Dark
	case "false":
		return Light
	}
	if osPrefersDark {
		return Dark
	}
	return Light
}

// PrefersDarkHint interprets a Sec-CH-Prefers-Color-Scheme style value.
func PrefersDarkHint(v string) bool {
	return strings.EqualFold(strings.Trim(strings.TrimSpace(v), `"`), "dark")
}

// Applied holds the theme currently applied to the presentation root.
// The zero value is light.
type Applied struct {
	mu  sync.RWMutex
	cur Preference
}

// ApplyTheme records p as the applied theme.
func (a *Applied) ApplyTheme(p Preference) {
	a.mu.Lock()
	a.cur = p
	a.mu.Unlock()
}

// Current returns the applied theme.
func (a *Applied) Current() Preference {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.cur == "" {
		return Light
	}
	return a.cur
}

// RootClass returns the class for the applied theme.
func (a *Applied) RootClass() string { return a.Current().RootClass() }
