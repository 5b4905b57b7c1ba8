package common

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the entropy source. Tests replace it to simulate exhaustion.
var randReader io.Reader = rand.Reader

// GenerateRandByteArray returns size bytes read from the system CSPRNG.
// A failing entropy source is reported as ErrCryptoUnavailable.
func GenerateRandByteArray(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoUnavailable, err)
	}
	return b, nil
}

// WipeByteArray overwrites b with zeros. Used for passphrases and derived
// keys once they are no longer needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CloneBytes returns a copy of b that does not share its backing array.
func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
