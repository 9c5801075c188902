package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func TestNewManagerDefaultsToBadger(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Storage.Engine = ""
	config.Storage.Path = t.TempDir()

	manager, err := NewManager(common.NewSilentLogger(), config)
	require.NoError(t, err)
	defer manager.Close()

	ctx := context.Background()
	require.NoError(t, manager.SnapshotStore().Save(ctx, models.SeedSnapshot(time.Now())))

	snap, err := manager.SnapshotStore().Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Bills, 4)

	require.NoError(t, manager.KeyValueStore().Set(ctx, "k", "v"))
	value, err := manager.KeyValueStore().Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestNewManagerRejectsUnknownEngine(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Storage.Engine = "postgres"

	_, err := NewManager(common.NewSilentLogger(), config)
	assert.Error(t, err)
}
