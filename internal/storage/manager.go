// Package storage provides the engine-selecting StorageManager factory.
// The default engine is embedded BadgerHold; "surreal" targets a shared
// SurrealDB instance.
package storage

import (
	"fmt"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/storage/badger"
	"github.com/LucraWealth/lucra-wallet/internal/storage/surreal"
)

// NewManager creates the StorageManager for the configured engine.
func NewManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	switch config.Storage.Engine {
	case "", "badger":
		return newBadgerManager(logger, config)
	case "surreal":
		return surreal.NewManager(logger, config)
	default:
		return nil, fmt.Errorf("unknown storage engine %q", config.Storage.Engine)
	}
}

// badgerManager implements interfaces.StorageManager over one embedded store.
type badgerManager struct {
	store     *badger.Store
	snapshots interfaces.SnapshotStore
	kv        interfaces.KeyValueStore
}

var _ interfaces.StorageManager = (*badgerManager)(nil)

func newBadgerManager(logger *common.Logger, config *common.Config) (*badgerManager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create badger store: %w", err)
	}

	logger.Info().
		Str("engine", "badger").
		Str("path", config.Storage.Path).
		Msg("Storage manager initialized")

	return &badgerManager{
		store:     store,
		snapshots: badger.NewSnapshotStorage(store, logger),
		kv:        badger.NewKVStorage(store, logger),
	}, nil
}

func (m *badgerManager) SnapshotStore() interfaces.SnapshotStore {
	return m.snapshots
}

func (m *badgerManager) KeyValueStore() interfaces.KeyValueStore {
	return m.kv
}

func (m *badgerManager) Close() error {
	return m.store.Close()
}
