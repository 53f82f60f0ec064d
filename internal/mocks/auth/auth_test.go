package auth

import (
	"context"
	"errors"
	"testing"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAccountAPI_Defaults(t *testing.T) {
	api := NewMockAccountAPI()
	ctx := context.Background()

	sess, err := api.Login(ctx, domainauth.Credentials{Email: "x@y.io"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleSeeker, sess.Identity.Role)
	assert.Equal(t, int32(1), api.LoginCalls.Load())

	require.NoError(t, api.DeleteAccount(ctx, "t"))
	assert.Equal(t, int32(1), api.DeleteCalls.Load())
}

func TestMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()

	_, err := kv.Get(ctx, "user")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "user", "{}"))
	v, err := kv.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	require.NoError(t, kv.Delete(ctx, "user"))
	require.NoError(t, kv.Delete(ctx, "user"))
	assert.Empty(t, kv.Snapshot())

	boom := errors.New("boom")
	kv.GetErr = boom
	_, err = kv.Get(ctx, "user")
	assert.ErrorIs(t, err, boom)
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{Valid: map[string]bool{"good": true}}
	assert.NoError(t, v.Verify(context.Background(), "good"))
	assert.ErrorIs(t, v.Verify(context.Background(), "bad"), ErrTokenRejected)
}
