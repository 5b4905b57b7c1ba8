package services

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
)

// Session tracks whether the journal is unlocked and holds a private copy of
// the passphrase while it is.
type Session struct {
	mu         sync.Mutex
	verifier   *Verifier
	rotator    *Rotator
	audit      *AuditRecorder
	log        logging.Logger
	passphrase []byte
}

func NewSession(verifier *Verifier, rotator *Rotator, audit *AuditRecorder, log logging.Logger) *Session {
	return &Session{verifier: verifier, rotator: rotator, audit: audit, log: log}
}

// IsSetup reports whether a passphrase has been created.
func (s *Session) IsSetup(ctx context.Context) (bool, error) {
	return s.verifier.HasFingerprint(ctx)
}

func (s *Session) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passphrase != nil
}

// Setup creates the first passphrase and unlocks the session with it.
func (s *Session) Setup(ctx context.Context, passphrase []byte) error {
	if utf8.RuneCount(passphrase) < MinPassphraseLength {
		return fmt.Errorf("%w: passphrase must be at least %d characters", common.ErrValidation, MinPassphraseLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.verifier.HasFingerprint(ctx)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrAlreadySetup
	}
	if err := s.verifier.SetFingerprint(ctx, passphrase); err != nil {
		return err
	}
	s.hold(passphrase)

	s.log.Info(ctx, "passphrase created")
	s.audit.record(ctx, models.ActionPassphraseCreated, "Initial passphrase setup completed")
	return nil
}

// Unlock checks passphrase against the stored fingerprint.
func (s *Session) Unlock(ctx context.Context, passphrase []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.verifier.Verify(ctx, passphrase)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Warn(ctx, "unlock rejected")
		return common.ErrAuthentication
	}
	s.hold(passphrase)

	s.log.Info(ctx, "journal unlocked")
	s.audit.record(ctx, models.ActionAppUnlocked, "Journal unlocked successfully")
	return nil
}

// Lock wipes the held passphrase. Locking a locked session does nothing.
func (s *Session) Lock(ctx context.Context) {
	if s.lock() {
		s.log.Info(ctx, "journal locked")
		s.audit.record(ctx, models.ActionAppLocked, "Journal locked for security")
	}
}

func (s *Session) lock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passphrase == nil {
		return false
	}
	common.WipeByteArray(s.passphrase)
	s.passphrase = nil
	return true
}

// WithPassphrase calls fn with the held passphrase. fn must not retain the
// slice.
func (s *Session) WithPassphrase(fn func(passphrase []byte) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passphrase == nil {
		return common.ErrLocked
	}
	return fn(s.passphrase)
}

// ChangePassphrase rotates every entry from oldPass to newPass and keeps
// newPass for the rest of the session.
func (s *Session) ChangePassphrase(ctx context.Context, oldPass, newPass []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passphrase == nil {
		return 0, common.ErrLocked
	}

	n, err := s.rotator.Rotate(ctx, oldPass, newPass)
	if err != nil {
		return 0, err
	}
	s.hold(newPass)
	return n, nil
}

// hold replaces the held passphrase with a copy of p. Callers hold s.mu.
func (s *Session) hold(p []byte) {
	common.WipeByteArray(s.passphrase)
	s.passphrase = common.CloneBytes(p)
	if s.passphrase == nil {
		s.passphrase = []byte{}
	}
}
