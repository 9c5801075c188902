package surreal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// snapshotID is the single record id holding the wallet snapshot.
const snapshotID = "wallet"

// snapshotRecord carries the snapshot as a JSON string so decimal values
// survive the round trip without driver-specific numeric coercion.
type snapshotRecord struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// SnapshotStore persists the wallet snapshot in the wallet_snapshot table.
type SnapshotStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewSnapshotStore creates a SnapshotStore on the given connection.
func NewSnapshotStore(db *surrealdb.DB, logger *common.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

// Load returns the persisted snapshot, or (nil, nil) when none exists. A
// record that fails to decode is treated as absent.
func (s *SnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	record, err := surrealdb.Select[snapshotRecord](ctx, s.db, surrealmodels.NewRecordID("wallet_snapshot", snapshotID))
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet snapshot: %w", err)
	}
	if record == nil || record.Data == "" {
		return nil, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(record.Data), &snap); err != nil {
		s.logger.Warn().Err(err).Msg("Stored wallet snapshot is malformed, starting fresh")
		return nil, nil
	}
	return &snap, nil
}

// Save upserts the snapshot record, retrying transient failures.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode wallet snapshot: %w", err)
	}

	record := snapshotRecord{Key: snapshotID, Data: string(data)}
	sql := "UPSERT type::record('wallet_snapshot', $id) CONTENT $record"
	vars := map[string]any{"id": snapshotID, "record": record}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]snapshotRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save wallet snapshot after retries: %w", err)
		}
	}
	return nil
}
