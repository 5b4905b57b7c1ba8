package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/filex"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/ui"
)

const defaultAuditRows = 20

// Export writes the encrypted entries to the file named by the first
// argument.
func (a *App) Export(ctx context.Context, args []string) (err error) {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	if len(args) == 0 {
		return errors.New("usage: export <file>")
	}
	path := args[0]
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n, err := a.privacy.Export(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), fmt.Sprintf("Exported %d encrypted entries to", n), ui.Path.Sprint(path))
	return nil
}

// Audit prints the newest audit records, 20 unless a count is given.
func (a *App) Audit(ctx context.Context, args []string) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	n := defaultAuditRows
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("%w: audit count must be a positive number", common.ErrValidation)
		}
		n = v
	}

	logs, err := a.audit.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "Audit log is empty")
		return nil
	}
	for _, l := range logs {
		ts := time.UnixMilli(l.Timestamp).Format(dateLayout)
		fmt.Fprintf(a.out, "%s  %s  %s\n", ui.Muted.Sprint(ts), a.audit.Label(l.Action), l.Details)
	}
	return nil
}

// Stats prints what is stored without decrypting anything.
func (a *App) Stats(ctx context.Context) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	st, err := a.privacy.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%-18s %d\n", "Entries:", st.TotalEntries)
	fmt.Fprintf(a.out, "%-18s %d\n", "Entries with mood:", st.EntriesWithMood)
	fmt.Fprintf(a.out, "%-18s %d bytes\n", "Stored size:", st.StorageBytes)
	fmt.Fprintf(a.out, "%-18s %d days\n", "Current streak:", st.CurrentStreak)
	fmt.Fprintf(a.out, "%-18s %d days\n", "Longest streak:", st.LongestStreak)
	fmt.Fprintf(a.out, "%-18s %s\n", "Best time:", st.BestWritingTime)
	fmt.Fprintf(a.out, "%-18s %s\n", "Most active day:", st.MostProductiveDay)
	for _, m := range models.Moods {
		if c := st.MoodDistribution[m]; c > 0 {
			fmt.Fprintf(a.out, "  %s %-9s %d\n", m.Emoji(), m, c)
		}
	}
	return nil
}

// Wipe permanently deletes every stored record after confirmation.
func (a *App) Wipe(ctx context.Context) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	fmt.Fprintln(a.out, ui.Warning.Sprint("This deletes all entries, the passphrase and the audit log. It cannot be undone."))
	answer, err := getSimpleText(a.reader, "Type DELETE to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "DELETE" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.privacy.WipeAll(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "All data deleted. Run", ui.Code.Sprint("setup"), "to start over.")
	return nil
}
