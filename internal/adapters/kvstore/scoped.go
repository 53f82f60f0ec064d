// Package kvstore holds store-agnostic KV helpers and the in-process backend.
package kvstore

import (
	"context"

	"github.com/Kabuna254/Job-App/internal/ports"
)

// Scoped namespaces every key of base under one client scope, so each
// client sees its own "user" and "darkMode" entries.
type Scoped struct {
	base   ports.KVStore
	prefix string
}

var _ ports.KVStore = (*Scoped)(nil)

// NewScoped returns base restricted to scope.
func NewScoped(base ports.KVStore, scope string) *Scoped {
	return &Scoped{base: base, prefix: "client:" + scope + ":"}
}

func (s *Scoped) Get(ctx context.Context, key string) (string, error) {
	return s.base.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.base.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.base.Delete(ctx, s.prefix+key)
}
