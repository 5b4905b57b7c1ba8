package common

import (
	"bytes"
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	const n = 32
	a, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandByteArray(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two GenerateRandByteArray(%d) results are identical", n)
	}
}

func TestGenerateRandByteArray_EntropyFailure(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	t.Cleanup(func() { randReader = orig })

	_, err := GenerateRandByteArray(16)
	if !errors.Is(err, ErrCryptoUnavailable) {
		t.Fatalf("expected ErrCryptoUnavailable, got %v", err)
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- CloneBytes ----------

func TestCloneBytes_DoesNotAlias(t *testing.T) {
	src := []byte("secret")
	dst := CloneBytes(src)
	WipeByteArray(src)
	if string(dst) != "secret" {
		t.Fatalf("clone was affected by wiping the source: %q", dst)
	}
	if CloneBytes(nil) != nil {
		t.Fatalf("expected nil clone of nil")
	}
}
