package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		osDark bool
		want   Preference
	}{
		{"stored true beats os light", "true", false, Dark},
		{"stored false beats os dark", "false", true, Light},
		{"os dark when unset", "", true, Dark},
		{"light default", "", false, Light},
		{"garbage defers to os", "yes", true, Dark},
		{"garbage defaults light", "1", false, Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.stored, tt.osDark))
		})
	}
}

func TestPreferenceHelpers(t *testing.T) {
	assert.Equal(t, "true", Dark.Persisted())
	assert.Equal(t, "false", Light.Persisted())
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, "dark", Dark.RootClass())
	assert.Empty(t, Light.RootClass())
}

func TestPrefersDarkHint(t *testing.T) {
	assert.True(t, PrefersDarkHint("dark"))
	assert.True(t, PrefersDarkHint(`"dark"`))
	assert.False(t, PrefersDarkHint("light"))
	assert.False(t, PrefersDarkHint(""))
}

func TestApplied(t *testing.T) {
	var a Applied
	assert.Equal(t, Light, a.Current())
	a.ApplyTheme(Dark)
	assert.Equal(t, "dark", a.RootClass())
	a.ApplyTheme(Light)
	assert.Empty(t, a.RootClass())
}
