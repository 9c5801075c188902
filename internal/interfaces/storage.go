// Package interfaces defines service and storage contracts for the wallet engine.
package interfaces

import (
	"context"

	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// StorageManager coordinates the persistence backends behind one surface.
type StorageManager interface {
	SnapshotStore() SnapshotStore
	KeyValueStore() KeyValueStore
	Close() error
}

// SnapshotStore persists the wallet snapshot. Load is called once at ledger
// startup; Save after every committed mutation.
type SnapshotStore interface {
	// Load returns the persisted snapshot, or (nil, nil) when none exists.
	// A malformed snapshot is treated as absent, not as an error.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save persists the snapshot. Failures are non-fatal to the caller:
	// in-memory state stays authoritative for the session.
	Save(ctx context.Context, snapshot *models.Snapshot) error
}

// KeyValueStore holds system-level settings (schema stamps, runtime flags).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
