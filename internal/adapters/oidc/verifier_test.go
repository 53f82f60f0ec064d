package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://id.example.test"

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims map[string]any) string {
	t.Helper()
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: jose.JSONWebKey{Key: key, KeyID: "k1"}},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	jws, err := signer.Sign(payload)
	require.NoError(t, err)
	raw, err := jws.CompactSerialize()
	require.NoError(t, err)
	return raw
}

func claims(iss, aud string, exp time.Time) map[string]any {
	return map[string]any{
		"iss": iss,
		"aud": aud,
		"sub": "user-1",
		"iat": time.Now().Add(-time.Minute).Unix(),
		"exp": exp.Unix(),
	}
}

func TestStaticVerifier(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := NewStaticVerifier(testIssuer, "jobboard-ui", &key.PublicKey)
	ctx := context.Background()
	later := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		token   string
		wantErr bool
		expired bool
	}{
		{"valid", signToken(t, key, claims(testIssuer, "jobboard-ui", later)), false, false},
		{"wrong audience", signToken(t, key, claims(testIssuer, "other", later)), true, false},
		{"wrong issuer", signToken(t, key, claims("https://evil.test", "jobboard-ui", later)), true, false},
		{"wrong key", signToken(t, other, claims(testIssuer, "jobboard-ui", later)), true, false},
		{"expired", signToken(t, key, claims(testIssuer, "jobboard-ui", time.Now().Add(-time.Hour))), true, true},
		{"garbage", "not-a-jwt", true, false},
		{"empty", " ", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(ctx, tt.token)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.expired {
				assert.ErrorIs(t, err, ErrTokenExpired)
			}
		})
	}
}

func TestStaticVerifier_NoAudience(t *testing.T) {
	key := newKey(t)
	v := NewStaticVerifier(testIssuer, "", &key.PublicKey)
	tok := signToken(t, key, claims(testIssuer, "anything", time.Now().Add(time.Hour)))
	assert.NoError(t, v.Verify(context.Background(), tok))
}

func TestNewVerifier_Discovery(t *testing.T) {
	key := newKey(t)
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/authorize",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/jwks",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(jose.JSONWebKeySet{Keys: []jose.JSONWebKey{
			{Key: &key.PublicKey, KeyID: "k1", Algorithm: string(jose.RS256), Use: "sig"},
		}})
	})

	v, err := NewVerifier(context.Background(), Config{
		IssuerURL:  srv.URL + "/.well-known/openid-configuration",
		Audience:   "jobboard-ui",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	tok := signToken(t, key, claims(srv.URL, "jobboard-ui", time.Now().Add(time.Hour)))
	assert.NoError(t, v.Verify(context.Background(), tok))
}

func TestNewVerifier_Errors(t *testing.T) {
	_, err := NewVerifier(context.Background(), Config{})
	require.Error(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err = NewVerifier(context.Background(), Config{IssuerURL: srv.URL, HTTPClient: srv.Client()})
	require.Error(t, err)
}
