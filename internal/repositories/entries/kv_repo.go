package entries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/storage"
)

// KVRepository implements Repository as a JSON array under storage.KeyEntries.
type KVRepository struct {
	kv storage.KV
}

// NewKVRepository returns a KVRepository bound to kv.
func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

// GetAll decodes the stored array.
func (r *KVRepository) GetAll(ctx context.Context) ([]models.JournalEntry, error) {
	raw, err := r.kv.Get(ctx, storage.KeyEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	result := []models.JournalEntry{}
	if len(raw) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return result, nil
}

// SaveAll encodes entries and overwrites the stored array.
func (r *KVRepository) SaveAll(ctx context.Context, entries []models.JournalEntry) error {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyEntries, raw); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

// Size returns the length of the stored JSON.
func (r *KVRepository) Size(ctx context.Context) (int, error) {
	raw, err := r.kv.Get(ctx, storage.KeyEntries)
	if err != nil {
		return 0, fmt.Errorf("failed to load entries: %w", err)
	}
	return len(raw), nil
}

// Clear removes the stored array.
func (r *KVRepository) Clear(ctx context.Context) error {
	if err := r.kv.Remove(ctx, storage.KeyEntries); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}
