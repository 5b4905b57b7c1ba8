package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/repositories/entries"
	"github.com/dmitrijs2005/reflect/internal/storage"
)

// Stats summarizes the stored journal without decrypting anything.
type Stats struct {
	TotalEntries     int
	EntriesWithMood  int
	MoodDistribution map[models.Mood]int
	StorageBytes     int

	// Days in a row with at least one entry.
	CurrentStreak int
	LongestStreak int

	// BestWritingTime is the busiest hour, e.g. "9:00 - 10:00", and
	// MostProductiveDay the busiest weekday. Both are "N/A" with no entries.
	BestWritingTime   string
	MostProductiveDay string
}

// Privacy exports, measures and wipes the stored data.
type Privacy struct {
	store   storage.Store
	vault   *Vault
	session *Session
	audit   *AuditRecorder
	log     logging.Logger
	now     func() time.Time
}

func NewPrivacy(store storage.Store, vault *Vault, session *Session, audit *AuditRecorder, log logging.Logger) *Privacy {
	return &Privacy{store: store, vault: vault, session: session, audit: audit, log: log, now: time.Now}
}

// Export writes the stored entries, still encrypted, to w as indented JSON
// and returns how many were written.
func (p *Privacy) Export(ctx context.Context, w io.Writer) (int, error) {
	all, err := p.vault.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}

	p.log.Info(ctx, "entries exported", "count", len(all))
	p.audit.record(ctx, models.ActionDataExported, fmt.Sprintf("Exported %d encrypted entries", len(all)))
	return len(all), nil
}

func (p *Privacy) Stats(ctx context.Context) (Stats, error) {
	repo := entries.NewKVRepository(p.store)
	all, err := repo.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	size, err := repo.Size(ctx)
	if err != nil {
		return Stats{}, err
	}

	pattern := patternOf(all, p.now())
	st := Stats{
		TotalEntries:      len(all),
		MoodDistribution:  map[models.Mood]int{},
		StorageBytes:      size,
		CurrentStreak:     pattern.CurrentStreak,
		LongestStreak:     pattern.LongestStreak,
		BestWritingTime:   pattern.BestWritingTime,
		MostProductiveDay: pattern.MostProductiveDay,
	}
	for _, e := range all {
		if e.Mood.Valid() {
			st.EntriesWithMood++
			st.MoodDistribution[e.Mood]++
		}
	}
	return st, nil
}

// WipeAll removes every stored record and locks the session.
func (p *Privacy) WipeAll(ctx context.Context) error {
	err := p.store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		for _, key := range []string{
			storage.KeyEntries,
			storage.KeyPassphraseHash,
			storage.KeyPassphraseSalt,
			storage.KeyAuditLog,
		} {
			if err := tx.Remove(ctx, key); err != nil {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.vault.reset()
	p.session.lock()

	p.log.Warn(ctx, "all data deleted")
	p.audit.record(ctx, models.ActionDataDeleted, "All data permanently deleted")
	return nil
}
