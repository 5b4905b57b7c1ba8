package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/cryptox"
	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/repositories/entries"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/google/uuid"
)

// Vault owns the encrypted entry collection. Entry content is only decrypted
// on request; listing and filtering work on the plaintext metadata.
//
// mu serializes every mutation of the persisted collection, including a
// passphrase rotation running through Rotator.
type Vault struct {
	mu    sync.Mutex
	repo  entries.Repository
	audit *AuditRecorder
	log   logging.Logger
	now   func() time.Time

	cache []models.JournalEntry
}

func NewVault(store storage.Store, audit *AuditRecorder, log logging.Logger) *Vault {
	return &Vault{
		repo:  entries.NewKVRepository(store),
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// CreateEntry encrypts content under passphrase and stores it as the newest
// entry.
func (v *Vault) CreateEntry(ctx context.Context, content string, mood models.Mood, passphrase []byte) (models.JournalEntry, error) {
	if !mood.Valid() {
		return models.JournalEntry{}, fmt.Errorf("%w: unknown mood %q", common.ErrValidation, mood)
	}
	if strings.TrimSpace(content) == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: entry content is empty", common.ErrValidation)
	}

	bundle, err := cryptox.Encrypt(content, passphrase)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry := models.JournalEntry{
		ID:            uuid.NewString(),
		Timestamp:     v.now().UnixMilli(),
		EncryptedData: models.NewEncryptedData(bundle),
		Mood:          mood,
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.repo.GetAll(ctx)
	if err != nil {
		return models.JournalEntry{}, err
	}
	next := append([]models.JournalEntry{entry}, current...)
	if err := v.repo.SaveAll(ctx, next); err != nil {
		return models.JournalEntry{}, err
	}
	v.cache = next

	v.log.Info(ctx, "entry created", "id", entry.ID, "mood", string(mood))
	v.audit.record(ctx, models.ActionEntryCreated,
		fmt.Sprintf("Entry created (%d characters, mood: %s %s)", utf8.RuneCountInString(content), mood.Emoji(), mood))

	return entry, nil
}

// DecryptEntry returns the plaintext of entry. A wrong passphrase or a
// damaged bundle yields common.ErrDecryptionFailed.
func (v *Vault) DecryptEntry(entry models.JournalEntry, passphrase []byte) (string, error) {
	bundle, err := entry.EncryptedData.Bundle()
	if err != nil {
		return "", err
	}
	return cryptox.Decrypt(bundle, passphrase)
}

// ViewEntry decrypts the stored entry with the given id and records the view.
func (v *Vault) ViewEntry(ctx context.Context, id string, passphrase []byte) (models.JournalEntry, string, error) {
	entry, err := v.find(ctx, id)
	if err != nil {
		return models.JournalEntry{}, "", err
	}
	content, err := v.DecryptEntry(entry, passphrase)
	if err != nil {
		return models.JournalEntry{}, "", err
	}
	v.audit.record(ctx, models.ActionEntryViewed,
		fmt.Sprintf("Entry from %s decrypted and viewed", entry.CreatedAt().Format("Jan 2, 2006")))
	return entry, content, nil
}

// LoadAll reads the persisted collection in stored order and refreshes the
// in-memory snapshot.
func (v *Vault) LoadAll(ctx context.Context) ([]models.JournalEntry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	all, err := v.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	v.cache = all
	v.log.Debug(ctx, "entries loaded", "count", len(all))
	return cloneEntries(all), nil
}

// Entries returns a copy of the in-memory snapshot.
func (v *Vault) Entries() []models.JournalEntry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneEntries(v.cache)
}

// FilterByMood returns the snapshot entries tagged with mood.
func (v *Vault) FilterByMood(mood models.Mood) []models.JournalEntry {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := []models.JournalEntry{}
	for _, e := range v.cache {
		if e.Mood == mood {
			out = append(out, e)
		}
	}
	return out
}

// DeleteEntry removes the entry with the given id.
func (v *Vault) DeleteEntry(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	next := make([]models.JournalEntry, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(current) {
		return fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
	}
	if err := v.repo.SaveAll(ctx, next); err != nil {
		return err
	}
	v.cache = next

	v.log.Info(ctx, "entry deleted", "id", id)
	v.audit.record(ctx, models.ActionEntryDeleted, fmt.Sprintf("Entry %s deleted", id))
	return nil
}

func (v *Vault) find(ctx context.Context, id string) (models.JournalEntry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	all, err := v.repo.GetAll(ctx)
	if err != nil {
		return models.JournalEntry{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
}

// reset drops the snapshot after the stored data has been wiped.
func (v *Vault) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache = nil
}

func cloneEntries(in []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(in))
	copy(out, in)
	return out
}
