// Package cryptox implements the encryption-at-rest primitives of the journal:
// passphrase-based key derivation, AES-256-GCM sealing of entry content and
// one-way passphrase fingerprints.
//
// Nothing in this package keeps state, caches keys or logs. Derived keys are
// wiped as soon as the cipher has been constructed.
package cryptox

import (
	"crypto/sha256"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-encryption key derivation salt.
	SaltSize = 16
	// NonceSize is the length of the per-encryption GCM nonce.
	NonceSize = 12
	// KeySize is the AES-256 key length.
	KeySize = 32
	// Iterations is the PBKDF2-HMAC-SHA256 work factor.
	Iterations = 100_000
)

// DeriveKey derives a 256-bit AES key from passphrase and salt with
// PBKDF2-HMAC-SHA256. The same inputs always produce the same key.
//
// It returns common.ErrInvalidParameter if salt is not exactly SaltSize bytes.
// The caller owns the returned slice and should wipe it after use.
func DeriveKey(passphrase []byte, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", common.ErrInvalidParameter, SaltSize, len(salt))
	}
	return pbkdf2.Key(passphrase, salt, Iterations, KeySize, sha256.New), nil
}
