package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	client := testutil.Redis(t)

	store := NewKVStore(client, KVStoreOptions{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client:abc:user", `{"email":"a@b.co","role":"seeker"}`))
	v, err := store.Get(ctx, "client:abc:user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.co","role":"seeker"}`, v)

	raw, err := client.Get(ctx, DefaultKeyPrefix+"client:abc:user").Result()
	require.NoError(t, err)
	assert.Equal(t, v, raw)

	require.NoError(t, store.Delete(ctx, "client:abc:user"))
	_, err = store.Get(ctx, "client:abc:user")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, store.Delete(ctx, "client:abc:user"), "deleting a missing key is fine")
}

func TestKVStore_TTL(t *testing.T) {
	client := testutil.Redis(t)

	store := NewKVStore(client, KVStoreOptions{Prefix: "test:", TTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "darkMode", "true"))
	ttl, err := client.TTL(ctx, "test:darkMode").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestSubmissionGuard_FirstWins(t *testing.T) {
	client := testutil.Redis(t)

	guard := NewSubmissionGuard(client, "", nil)
	ctx := context.Background()

	release, ok, err := guard.TryAcquire(ctx, "client-1:login", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = guard.TryAcquire(ctx, "client-1:login", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	_, ok, err = guard.TryAcquire(ctx, "client-1:login", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
