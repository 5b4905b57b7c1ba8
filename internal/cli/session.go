package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/services"
	"github.com/dmitrijs2005/reflect/internal/ui"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errMismatch = errors.New("passphrases do not match")

// readNewPassphrase asks for a passphrase twice. The result must be wiped by
// the caller.
func (a *App) readNewPassphrase(prompt string) ([]byte, error) {
	first, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	second, err := getPassword(a.reader, "Repeat passphrase", a.out)
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, errMismatch
	}
	return first, nil
}

// Setup creates the first passphrase and unlocks the journal.
func (a *App) Setup(ctx context.Context) error {
	fmt.Fprintln(a.out, ui.Warning.Sprint("There is no recovery: a lost passphrase means lost entries."))

	pass, err := a.readNewPassphrase(fmt.Sprintf("New passphrase (at least %d characters)", services.MinPassphraseLength))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	if err := a.session.Setup(ctx, pass); err != nil {
		if errors.Is(err, common.ErrAlreadySetup) {
			return fmt.Errorf("a passphrase already exists, use %s", ui.Code.Sprint("unlock"))
		}
		return err
	}

	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "Passphrase created, journal unlocked")
	return nil
}

// Unlock asks for the passphrase and opens the journal.
func (a *App) Unlock(ctx context.Context) error {
	if a.session.IsUnlocked() {
		fmt.Fprintln(a.out, "Journal is already unlocked")
		return nil
	}

	pass, err := getPassword(a.reader, "Passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	if err := a.session.Unlock(ctx, pass); err != nil {
		return err
	}
	entries, err := a.vault.LoadAll(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "Journal unlocked", ui.Muted.Sprintf("%d entries", len(entries)))
	return nil
}

func (a *App) Lock(ctx context.Context) error {
	a.session.Lock(ctx)
	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "Journal locked")
	return nil
}

// Passwd re-encrypts every entry under a new passphrase.
func (a *App) Passwd(ctx context.Context) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}

	oldPass, err := getPassword(a.reader, "Current passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPass)

	newPass, err := a.readNewPassphrase(fmt.Sprintf("New passphrase (at least %d characters)", services.MinPassphraseLength))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPass)

	var failedAt services.RotationState
	a.rotator.OnTransition = func(from, to services.RotationState) {
		if to == services.StateFailed {
			failedAt = from
		}
	}
	defer func() { a.rotator.OnTransition = nil }()

	stop := ui.StartSpinner(a.out, "Re-encrypting entries...")
	n, err := a.session.ChangePassphrase(ctx, oldPass, newPass)
	stop()
	if err != nil {
		return fmt.Errorf("passphrase unchanged (stopped at %s): %w", failedAt, err)
	}

	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), fmt.Sprintf("Passphrase changed, %d entries re-encrypted", n))
	return nil
}
