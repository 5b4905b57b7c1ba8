// Package storage provides the opaque key-value persistence port used by the
// journal core, and two implementations of it: an in-memory store and a
// SQLite-backed store.
//
// # Data Model
//
// Every record is a byte value under a string key. The core uses four keys
// (see the Key* constants); their encoding is owned by the callers.
//
// # Atomicity
//
// Store.Update applies every write made through its handle together or not
// at all. The passphrase rotation relies on this to replace the entry
// collection and the fingerprint in one step.
//
// Typical Usage
//
//	st, _ := storage.OpenSQLite(ctx, "journal.db")
//	defer st.Close()
//	_ = st.Set(ctx, storage.KeyEntries, raw)
//	_ = st.Update(ctx, func(ctx context.Context, tx storage.KV) error {
//	    if err := tx.Set(ctx, storage.KeyEntries, raw); err != nil {
//	        return err
//	    }
//	    return tx.Set(ctx, storage.KeyPassphraseHash, hash)
//	})
package storage

import "context"

// Keys of the records written by the journal core.
const (
	KeyEntries        = "entries"
	KeyPassphraseHash = "passphrase_hash"
	KeyPassphraseSalt = "passphrase_salt"
	KeyAuditLog       = "audit_log"
)

// KV is the get/set/remove port over string keys.
type KV interface {
	// Get returns the value stored under key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Store is a KV with an atomic multi-key update.
type Store interface {
	KV

	// Update runs fn with a transactional handle. Writes made through tx are
	// applied only if fn returns nil. fn must not use the Store itself.
	Update(ctx context.Context, fn func(ctx context.Context, tx KV) error) error

	// Close releases the underlying resources.
	Close() error
}
