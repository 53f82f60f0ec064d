package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/adapters/kvstore"
)

func TestOpenStorage_Memory(t *testing.T) {
	cfg := &config.AppConfig{Storage: config.StorageConfig{Backend: config.StorageMemory}}
	st, err := OpenStorage(context.Background(), StorageDeps{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, st.Close()) })

	assert.IsType(t, &kvstore.Memory{}, st.KV)
	assert.IsType(t, &kvstore.Guard{}, st.Guard)
	assert.Nil(t, st.Purger)
}

func TestOpenStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AppConfig{Storage: config.StorageConfig{
		Backend:    config.StorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "state", "jobboard.db"),
		TTL:        time.Hour,
	}}
	st, err := OpenStorage(ctx, StorageDeps{Config: cfg})
	require.NoError(t, err)

	require.NoError(t, st.KV.Set(ctx, "client:abc:darkMode", "true"))
	got, err := st.KV.Get(ctx, "client:abc:darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", got)

	require.NotNil(t, st.Purger)
	n, err := st.Purger.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, st.Close())
}

func TestOpenStorage_RequiresConfig(t *testing.T) {
	_, err := OpenStorage(context.Background(), StorageDeps{})
	assert.Error(t, err)
}
