package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/common"
)

// tagSize is the GCM authentication tag appended to every ciphertext.
const tagSize = 16

// randomBytes is the entropy seam; tests swap it to simulate exhaustion.
var randomBytes = common.GenerateRandByteArray

// Bundle is the unit persisted for one encrypted text: the ciphertext with
// its authentication tag, and the salt and nonce it was sealed with.
// A Bundle is never modified after Encrypt returns it.
type Bundle struct {
	Ciphertext []byte
	Salt       []byte
	Nonce      []byte
}

// Encrypt seals plaintext under a key derived from passphrase.
//
// Every call draws a fresh random salt and nonce, so encrypting the same text
// under the same passphrase twice yields two unrelated bundles. The only
// failure under normal operation is an unavailable entropy source, reported as
// common.ErrCryptoUnavailable.
func Encrypt(plaintext string, passphrase []byte) (Bundle, error) {
	salt, err := randomBytes(SaltSize)
	if err != nil {
		return Bundle{}, fmt.Errorf("generate salt: %w", err)
	}
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return Bundle{}, fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return Bundle{}, err
	}

	ciphertext := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return Bundle{Ciphertext: ciphertext, Salt: salt, Nonce: nonce}, nil
}

// Decrypt opens b with a key re-derived from passphrase and b.Salt.
//
// Malformed salt or nonce lengths return common.ErrInvalidParameter. Every
// other failure, whether a wrong passphrase or a tampered or truncated
// ciphertext, returns common.ErrDecryptionFailed and nothing more specific.
func Decrypt(b Bundle, passphrase []byte) (string, error) {
	if len(b.Nonce) != NonceSize {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", common.ErrInvalidParameter, NonceSize, len(b.Nonce))
	}

	aead, err := newAEAD(passphrase, b.Salt)
	if err != nil {
		return "", err
	}

	if len(b.Ciphertext) < tagSize {
		return "", common.ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, b.Nonce, b.Ciphertext, nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

func newAEAD(passphrase, salt []byte) (cipher.AEAD, error) {
	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	return aead, nil
}
