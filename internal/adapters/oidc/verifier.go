// Package oidc verifies account API access tokens as OIDC-style JWTs.
// A deployment that fronts the job board API with an identity provider sets
// AUTH_TOKEN_ISSUER; stored tokens that no longer verify end the session.
package oidc

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Kabuna254/Job-App/internal/ports"
)

// ErrTokenExpired is returned for tokens past their exp claim.
var ErrTokenExpired = errors.New("token expired")

// Config holds the verifier settings.
type Config struct {
	// IssuerURL is the issuer; discovery is fetched from
	// <IssuerURL>/.well-known/openid-configuration.
	IssuerURL string
	// Audience must appear in the token's aud claim unless empty, in which
	// case the audience check is skipped.
	Audience   string
	HTTPClient *http.Client // Optional, defaults to a 30s client
}

// Verifier implements ports.TokenVerifier.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier runs OIDC discovery against cfg.IssuerURL.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	issuer := strings.TrimSuffix(strings.TrimSpace(cfg.IssuerURL), "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	if issuer == "" {
		return nil, errors.New("issuer URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	// go-oidc keeps this context for background JWKS refreshes.
	ctx = gooidc.ClientContext(ctx, httpClient)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	return &Verifier{verifier: op.Verifier(verifierConfig(cfg.Audience))}, nil
}

// NewStaticVerifier verifies against fixed public keys without discovery.
func NewStaticVerifier(issuer, audience string, keys ...crypto.PublicKey) *Verifier {
	keySet := &gooidc.StaticKeySet{PublicKeys: keys}
	return &Verifier{verifier: gooidc.NewVerifier(issuer, keySet, verifierConfig(audience))}
}

func verifierConfig(audience string) *gooidc.Config {
	return &gooidc.Config{
		ClientID:          audience,
		SkipClientIDCheck: audience == "",
	}
}

// Verify checks signature, issuer, audience, and expiry.
func (v *Verifier) Verify(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return errors.New("token is empty")
	}
	if _, err := v.verifier.Verify(ctx, rawToken); err != nil {
		var expired *gooidc.TokenExpiredError
		if errors.As(err, &expired) {
			return fmt.Errorf("%w at %s", ErrTokenExpired, expired.Expiry.UTC().Format(time.RFC3339))
		}
		return fmt.Errorf("verify token: %w", err)
	}
	return nil
}
