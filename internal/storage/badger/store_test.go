package badger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	snapshots := NewSnapshotStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	// Empty store loads as absent, not as an error.
	snap, err := snapshots.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	want := models.SeedSnapshot(time.Now())
	want.Balance = decimal.RequireFromString("42.42")
	require.NoError(t, snapshots.Save(ctx, want))

	got, err := snapshots.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(want.Balance))
	assert.Len(t, got.Tokens, len(want.Tokens))
	assert.Len(t, got.Bills, len(want.Bills))
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	snapshots := NewSnapshotStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	first := models.SeedSnapshot(time.Now())
	require.NoError(t, snapshots.Save(ctx, first))

	second := models.SeedSnapshot(time.Now())
	second.Balance = decimal.RequireFromString("7.00")
	require.NoError(t, snapshots.Save(ctx, second))

	got, err := snapshots.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(second.Balance))
}

func TestMalformedSnapshotLoadsAsAbsent(t *testing.T) {
	store := newTestStore(t)
	snapshots := NewSnapshotStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	record := SnapshotRecord{Key: snapshotKey, Data: []byte("{not json")}
	require.NoError(t, store.db.Upsert(snapshotKey, &record))

	snap, err := snapshots.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestKVStorage(t *testing.T) {
	store := newTestStore(t)
	kv := NewKVStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, kv.Set(ctx, "schema_version", "1"))
	value, err := kv.Get(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	require.NoError(t, kv.Set(ctx, "schema_version", "2"))
	value, err = kv.Get(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	require.NoError(t, kv.Delete(ctx, "schema_version"))
	_, err = kv.Get(ctx, "schema_version")
	assert.Error(t, err)

	// Deleting a missing key is a no-op.
	assert.NoError(t, kv.Delete(ctx, "schema_version"))
}
