// Package surreal implements wallet storage on SurrealDB for deployments
// that want the snapshot in a shared database instead of an embedded one.
package surreal

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db        *surrealdb.DB
	logger    *common.Logger
	snapshots *SnapshotStore
	kv        *KVStore
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager connects to SurrealDB, signs in, selects the namespace and
// database, and defines the wallet tables.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying tables that do not exist yet.
	for _, table := range []string{"wallet_snapshot", "system_kv"} {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return &Manager{
		db:        db,
		logger:    logger,
		snapshots: NewSnapshotStore(db, logger),
		kv:        NewKVStore(db, logger),
	}, nil
}

func (m *Manager) SnapshotStore() interfaces.SnapshotStore {
	return m.snapshots
}

func (m *Manager) KeyValueStore() interfaces.KeyValueStore {
	return m.kv
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}
