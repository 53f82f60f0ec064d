package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Kabuna254/Job-App/internal/ports"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionGuard admits one in-flight submission per key across all
// server instances using SET NX with a lease.
type SubmissionGuard struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

var _ ports.SubmissionGuard = (*SubmissionGuard)(nil)

// NewSubmissionGuard creates a guard whose keys live under prefix.
func NewSubmissionGuard(client redis.UniversalClient, prefix string, logger *slog.Logger) *SubmissionGuard {
	if prefix == "" {
		prefix = DefaultKeyPrefix + "submit:"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionGuard{client: client, prefix: prefix, logger: logger.With("component", "submission_guard")}
}

func (g *SubmissionGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	fullKey := g.prefix + key

	ok, err := g.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		// Release on a fresh context; the request context may already be done.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if rerr := releaseScript.Run(rctx, g.client, []string{fullKey}, token).Err(); rerr != nil {
			g.logger.Warn("release submission lock", "key", key, "error", rerr)
		}
	}, true, nil
}
