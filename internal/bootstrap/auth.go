package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/oidc"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// VerifierConfig contains configuration for access token verification.
type VerifierConfig struct {
	Auth   config.AuthConfig
	Logger *slog.Logger
}

// BuildTokenVerifier returns an OIDC verifier when AUTH_TOKEN_ISSUER is set.
// It returns nil when verification is off or discovery fails, in which case
// stored tokens are trusted until the API rejects them.
//
//nolint:ireturn // callers only need the port.
func BuildTokenVerifier(ctx context.Context, cfg VerifierConfig) ports.TokenVerifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Auth.VerifyTokens() {
		logger.InfoContext(ctx, "access token verification disabled")
		return nil
	}

	v, err := oidc.NewVerifier(ctx, oidc.Config{
		IssuerURL: cfg.Auth.TokenIssuer,
		Audience:  cfg.Auth.TokenAudience,
	})
	if err != nil {
		logger.WarnContext(ctx, "failed to create token verifier, verification disabled",
			"issuer", cfg.Auth.TokenIssuer,
			"error", err,
		)
		return nil
	}
	logger.InfoContext(ctx, "access token verification enabled", "issuer", cfg.Auth.TokenIssuer)
	return v
}
