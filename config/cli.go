package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CLIConfig configures the terminal client. The profile is its one client
// scope: it plays the part a browser plays for the server.
type CLIConfig struct {
	// Profile names the scope inside the profile store.
	Profile string `env:"JOBBOARD_PROFILE" envDefault:"default"`

	// ProfilePath is the SQLite file holding the profile. Empty means
	// <user config dir>/jobboard/profile.db.
	ProfilePath string `env:"JOBBOARD_PROFILE_PATH"`

	// ThemeHint stands in for the OS color-scheme preference ("dark" or "light").
	ThemeHint string `env:"JOBBOARD_THEME_HINT"`
}

// Sanitize fills the profile name and resolves the default profile path.
func (c *CLIConfig) Sanitize() {
	c.Profile = strings.TrimSpace(c.Profile)
	if c.Profile == "" {
		c.Profile = "default"
	}
	if strings.TrimSpace(c.ProfilePath) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		c.ProfilePath = filepath.Join(dir, "jobboard", "profile.db")
	}
}
