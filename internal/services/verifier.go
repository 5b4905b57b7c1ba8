package services

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/cryptox"
	"github.com/dmitrijs2005/reflect/internal/storage"
)

var fingerprintSalt = func() ([]byte, error) {
	return common.GenerateRandByteArray(cryptox.FingerprintSaltSize)
}

// Verifier persists a one-way fingerprint of the passphrase and checks
// candidates against it.
//
// A record without passphrase_salt is treated as the unsalted SHA-256 format
// and still verifies. SetFingerprint always writes the salted format.
type Verifier struct {
	store storage.Store
}

func NewVerifier(store storage.Store) *Verifier {
	return &Verifier{store: store}
}

// SetFingerprint replaces the stored fingerprint with one of passphrase.
func (v *Verifier) SetFingerprint(ctx context.Context, passphrase []byte) error {
	return v.store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		return writeFingerprint(ctx, tx, passphrase)
	})
}

// HasFingerprint reports whether a fingerprint has been stored.
func (v *Verifier) HasFingerprint(ctx context.Context) (bool, error) {
	raw, err := v.store.Get(ctx, storage.KeyPassphraseHash)
	if err != nil {
		return false, fmt.Errorf("failed to load fingerprint: %w", err)
	}
	return len(raw) > 0, nil
}

// Verify reports whether passphrase matches the stored fingerprint. It
// returns false when nothing is stored.
func (v *Verifier) Verify(ctx context.Context, passphrase []byte) (bool, error) {
	return verifyFingerprint(ctx, v.store, passphrase)
}

// writeFingerprint stores a salted fingerprint through kv, which may be a
// transaction handle.
func writeFingerprint(ctx context.Context, kv storage.KV, passphrase []byte) error {
	salt, err := fingerprintSalt()
	if err != nil {
		return err
	}
	fp, err := cryptox.Fingerprint(passphrase, salt)
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, storage.KeyPassphraseSalt, []byte(hex.EncodeToString(salt))); err != nil {
		return fmt.Errorf("failed to save fingerprint salt: %w", err)
	}
	if err := kv.Set(ctx, storage.KeyPassphraseHash, []byte(fp)); err != nil {
		return fmt.Errorf("failed to save fingerprint: %w", err)
	}
	return nil
}

func verifyFingerprint(ctx context.Context, kv storage.KV, passphrase []byte) (bool, error) {
	stored, err := kv.Get(ctx, storage.KeyPassphraseHash)
	if err != nil {
		return false, fmt.Errorf("failed to load fingerprint: %w", err)
	}
	if len(stored) == 0 {
		return false, nil
	}

	saltHex, err := kv.Get(ctx, storage.KeyPassphraseSalt)
	if err != nil {
		return false, fmt.Errorf("failed to load fingerprint salt: %w", err)
	}
	if len(saltHex) == 0 {
		return cryptox.EqualFingerprints(cryptox.LegacyFingerprint(passphrase), string(stored)), nil
	}

	salt, err := hex.DecodeString(string(saltHex))
	if err != nil {
		return false, fmt.Errorf("%w: stored fingerprint salt is not hex", common.ErrInvalidParameter)
	}
	fp, err := cryptox.Fingerprint(passphrase, salt)
	if err != nil {
		return false, err
	}
	return cryptox.EqualFingerprints(fp, string(stored)), nil
}
