package config

import "time"

// AuthConfig groups session and submission settings.
type AuthConfig struct {
	// TokenIssuer enables verification of stored access tokens as OIDC JWTs
	// when set. Leave empty when the API issues opaque tokens.
	TokenIssuer   string `env:"TOKEN_ISSUER"`
	TokenAudience string `env:"TOKEN_AUDIENCE"`

	// SubmissionLease bounds how long a login or registration submission
	// holds its in-flight guard.
	SubmissionLease time.Duration `env:"SUBMISSION_LEASE" envDefault:"30s"`

	// ClipboardWarning is how long the copy/paste warning stays visible.
	ClipboardWarning time.Duration `env:"CLIPBOARD_WARNING" envDefault:"3s"`
}

// VerifyTokens reports whether token verification is configured.
func (a *AuthConfig) VerifyTokens() bool { return a.TokenIssuer != "" }

// Sanitize restores defaults for non-positive durations.
func (a *AuthConfig) Sanitize() {
	if a.SubmissionLease <= 0 {
		a.SubmissionLease = 30 * time.Second
	}
	if a.ClipboardWarning <= 0 {
		a.ClipboardWarning = 3 * time.Second
	}
}
