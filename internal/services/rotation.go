package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/cryptox"
	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/repositories/entries"
	"github.com/dmitrijs2005/reflect/internal/storage"
)

// MinPassphraseLength is the minimum passphrase length in characters.
const MinPassphraseLength = 8

// RotationState is a step of a passphrase rotation.
type RotationState int

const (
	StateIdle RotationState = iota
	StateVerifyingOldPassphrase
	StateDecryptingAll
	StateEncryptingAll
	StatePersisting
	StateDone
	StateFailed
)

func (s RotationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateVerifyingOldPassphrase:
		return "verifying_old_passphrase"
	case StateDecryptingAll:
		return "decrypting_all"
	case StateEncryptingAll:
		return "encrypting_all"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Rotator re-encrypts every stored entry under a new passphrase.
//
// A rotation either completes or leaves the stored entries and fingerprint
// as they were: the new collection and the new fingerprint are written in a
// single storage.Store.Update.
type Rotator struct {
	store storage.Store
	vault *Vault
	audit *AuditRecorder
	log   logging.Logger

	// OnTransition, when set, is called for every state change.
	OnTransition func(from, to RotationState)

	mu    sync.Mutex
	state RotationState
}

func NewRotator(store storage.Store, vault *Vault, audit *AuditRecorder, log logging.Logger) *Rotator {
	return &Rotator{store: store, vault: vault, audit: audit, log: log}
}

// State returns the state of the last or current rotation.
func (r *Rotator) State() RotationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Rotator) transition(ctx context.Context, to RotationState) {
	r.mu.Lock()
	from := r.state
	r.state = to
	r.mu.Unlock()

	r.log.Debug(ctx, "rotation state", "from", from.String(), "to", to.String())
	if r.OnTransition != nil {
		r.OnTransition(from, to)
	}
}

func (r *Rotator) fail(ctx context.Context, err error) (int, error) {
	r.transition(ctx, StateFailed)
	r.log.Warn(ctx, "passphrase rotation failed", "err", err)
	return 0, err
}

// Rotate replaces oldPass with newPass for every entry and for the stored
// fingerprint. It returns the number of entries re-encrypted.
func (r *Rotator) Rotate(ctx context.Context, oldPass, newPass []byte) (int, error) {
	r.mu.Lock()
	r.state = StateIdle
	r.mu.Unlock()

	if utf8.RuneCount(newPass) < MinPassphraseLength {
		return r.fail(ctx, fmt.Errorf("%w: new passphrase must be at least %d characters", common.ErrValidation, MinPassphraseLength))
	}
	if bytes.Equal(oldPass, newPass) {
		return r.fail(ctx, fmt.Errorf("%w: new passphrase must differ from the current one", common.ErrValidation))
	}

	r.transition(ctx, StateVerifyingOldPassphrase)
	ok, err := verifyFingerprint(ctx, r.store, oldPass)
	if err != nil {
		return r.fail(ctx, err)
	}
	if !ok {
		return r.fail(ctx, common.ErrAuthentication)
	}

	r.vault.mu.Lock()
	defer r.vault.mu.Unlock()

	r.transition(ctx, StateDecryptingAll)
	current, err := r.vault.repo.GetAll(ctx)
	if err != nil {
		return r.fail(ctx, err)
	}
	plain := make([]string, len(current))
	for i, e := range current {
		bundle, err := e.EncryptedData.Bundle()
		if err != nil {
			return r.fail(ctx, fmt.Errorf("entry %s: %w", e.ID, err))
		}
		text, err := cryptox.Decrypt(bundle, oldPass)
		if err != nil {
			return r.fail(ctx, fmt.Errorf("entry %s: %w", e.ID, err))
		}
		plain[i] = text
	}

	r.transition(ctx, StateEncryptingAll)
	rotated := make([]models.JournalEntry, len(current))
	for i, e := range current {
		bundle, err := cryptox.Encrypt(plain[i], newPass)
		if err != nil {
			return r.fail(ctx, fmt.Errorf("entry %s: %w", e.ID, err))
		}
		e.EncryptedData = models.NewEncryptedData(bundle)
		rotated[i] = e
	}

	r.transition(ctx, StatePersisting)
	err = r.store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		if err := entries.NewKVRepository(tx).SaveAll(ctx, rotated); err != nil {
			return err
		}
		return writeFingerprint(ctx, tx, newPass)
	})
	if err != nil {
		return r.fail(ctx, err)
	}
	r.vault.cache = rotated

	r.transition(ctx, StateDone)
	r.log.Info(ctx, "passphrase rotated", "entries", len(rotated))
	r.audit.record(ctx, models.ActionPassphraseChanged, fmt.Sprintf("All %d entries re-encrypted", len(rotated)))

	return len(rotated), nil
}
