package badger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// snapshotKey is the single record key for the wallet snapshot.
const snapshotKey = "wallet"

// SnapshotRecord holds the snapshot as a JSON document. Storing bytes keeps
// the schema out of badgerhold's index machinery.
type SnapshotRecord struct {
	Key  string `badgerhold:"key"`
	Data []byte
}

type snapshotStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSnapshotStorage creates a SnapshotStore backed by BadgerHold.
func NewSnapshotStorage(store *Store, logger *common.Logger) *snapshotStorage {
	return &snapshotStorage{store: store, logger: logger}
}

// Load returns the persisted snapshot, or (nil, nil) when none exists. A
// record that fails to decode is treated as absent so a corrupt snapshot
// never blocks startup.
func (s *snapshotStorage) Load(_ context.Context) (*models.Snapshot, error) {
	var record SnapshotRecord
	err := s.store.db.Get(snapshotKey, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load wallet snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(record.Data, &snap); err != nil {
		s.logger.Warn().Err(err).Msg("Stored wallet snapshot is malformed, starting fresh")
		return nil, nil
	}
	return &snap, nil
}

// Save persists the snapshot as a single upserted record.
func (s *snapshotStorage) Save(_ context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode wallet snapshot: %w", err)
	}

	record := SnapshotRecord{Key: snapshotKey, Data: data}
	if err := s.store.db.Upsert(snapshotKey, &record); err != nil {
		return fmt.Errorf("failed to save wallet snapshot: %w", err)
	}
	return nil
}
