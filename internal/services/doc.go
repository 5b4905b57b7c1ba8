// Package services contains the journal's application services.
//
// The services are layered over internal/storage and the repositories:
//
//   - Verifier stores and checks the passphrase fingerprint.
//   - AuditRecorder keeps the capped, newest-first audit log.
//   - Vault owns the encrypted entry collection.
//   - Rotator re-encrypts every entry under a new passphrase.
//   - Session holds the passphrase between unlock and lock.
//   - Privacy exports, measures and wipes the stored data.
//
// Passphrases cross these APIs as []byte. Callers own their slices; services
// that keep a passphrase keep a private copy and wipe it when done.
package services
