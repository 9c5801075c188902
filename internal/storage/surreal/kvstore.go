package surreal

import (
	"context"
	"errors"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/LucraWealth/lucra-wallet/internal/common"
)

type sysKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KVStore holds system-level settings in the system_kv table.
type KVStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewKVStore creates a KVStore on the given connection.
func NewKVStore(db *surrealdb.DB, logger *common.Logger) *KVStore {
	return &KVStore{db: db, logger: logger}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	kv, err := surrealdb.Select[sysKV](ctx, s.db, surrealmodels.NewRecordID("system_kv", key))
	if err != nil || kv == nil {
		return "", errors.New("key '" + key + "' not found")
	}
	return kv.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	kv := sysKV{Key: key, Value: value}
	sql := "UPSERT type::record('system_kv', $id) CONTENT $kv"
	vars := map[string]any{"id": key, "kv": kv}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]sysKV](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to set key '%s' after retries: %w", key, err)
		}
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := surrealdb.Delete[sysKV](ctx, s.db, surrealmodels.NewRecordID("system_kv", key))
	if err != nil {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}
