// Package common defines the sentinel errors shared by the crypto core, the
// services and the CLI. Callers should use errors.Is to match these values;
// lower layers wrap them with fmt.Errorf("...: %w", err).
package common

import "errors"

var (
	// Crypto errors.
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrDecryptionFailed  = errors.New("failed to decrypt: incorrect passphrase or corrupted data")
	ErrCryptoUnavailable = errors.New("cryptographic primitives unavailable")

	// Passphrase errors.
	ErrAuthentication = errors.New("current passphrase is incorrect")
	ErrValidation     = errors.New("validation error")
	ErrAlreadySetup   = errors.New("passphrase already set up")
	ErrLocked         = errors.New("journal is locked")

	// Repository errors.
	ErrNotFound = errors.New("not found")
)
