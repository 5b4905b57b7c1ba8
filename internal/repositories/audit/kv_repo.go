// Package audit persists the audit log as a JSON array under
// storage.KeyAuditLog, newest record first.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/storage"
)

// Repository loads and replaces the stored audit log.
type Repository interface {
	GetAll(ctx context.Context) ([]models.AuditLogEntry, error)
	SaveAll(ctx context.Context, logs []models.AuditLogEntry) error
	Clear(ctx context.Context) error
}

// KVRepository implements Repository over a storage.KV.
type KVRepository struct {
	kv storage.KV
}

func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) GetAll(ctx context.Context) ([]models.AuditLogEntry, error) {
	raw, err := r.kv.Get(ctx, storage.KeyAuditLog)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit log: %w", err)
	}
	logs := []models.AuditLogEntry{}
	if len(raw) == 0 {
		return logs, nil
	}
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode audit log: %w", err)
	}
	return logs, nil
}

func (r *KVRepository) SaveAll(ctx context.Context, logs []models.AuditLogEntry) error {
	if logs == nil {
		logs = []models.AuditLogEntry{}
	}
	raw, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("failed to encode audit log: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyAuditLog, raw); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	if err := r.kv.Remove(ctx, storage.KeyAuditLog); err != nil {
		return fmt.Errorf("failed to clear audit log: %w", err)
	}
	return nil
}
