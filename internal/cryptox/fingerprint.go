package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/common"
	"golang.org/x/crypto/argon2"
)

// FingerprintSaltSize is the length of the per-installation fingerprint salt.
const FingerprintSaltSize = 16

// Argon2id parameters for salted fingerprints.
const (
	fingerprintTime    = 1
	fingerprintMemory  = 64 * 1024
	fingerprintThreads = 4
	fingerprintLen     = 32
)

// Fingerprint returns the hex-encoded Argon2id hash of passphrase under salt.
// It is independent of the encryption key: nothing derived here can open a
// Bundle.
func Fingerprint(passphrase, salt []byte) (string, error) {
	if len(salt) != FingerprintSaltSize {
		return "", fmt.Errorf("%w: fingerprint salt must be %d bytes, got %d", common.ErrInvalidParameter, FingerprintSaltSize, len(salt))
	}
	sum := argon2.IDKey(passphrase, salt, fingerprintTime, fingerprintMemory, fingerprintThreads, fingerprintLen)
	return hex.EncodeToString(sum), nil
}

// LegacyFingerprint returns the unsalted hex SHA-256 of passphrase. Stores
// written before salted fingerprints existed hold this value.
func LegacyFingerprint(passphrase []byte) string {
	sum := sha256.Sum256(passphrase)
	return hex.EncodeToString(sum[:])
}

// EqualFingerprints compares two fingerprints in constant time.
func EqualFingerprints(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
