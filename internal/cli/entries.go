package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/ui"
)

const dateLayout = "2006-01-02 15:04"

func moodOptions() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = m.Emoji() + " " + string(m)
	}
	return strings.Join(names, ", ")
}

// Write asks for a mood and the entry text and stores the encrypted entry.
func (a *App) Write(ctx context.Context) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}

	moodText, err := getSimpleText(a.reader, "Mood: "+moodOptions(), a.out)
	if err != nil {
		return err
	}
	mood, err := models.ParseMood(strings.ToLower(moodText))
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return err
	}

	var entry models.JournalEntry
	err = a.session.WithPassphrase(func(p []byte) error {
		var err error
		entry, err = a.vault.CreateEntry(ctx, content, mood, p)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "Entry saved", ui.Highlight.Sprint(entry.ID))
	return nil
}

// List prints the stored entries, optionally only those with the mood given
// as the first argument. Nothing is decrypted.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}

	all, err := a.vault.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		mood, err := models.ParseMood(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		all = a.vault.FilterByMood(mood)
	}

	if len(all) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return nil
	}
	for _, e := range all {
		fmt.Fprintf(a.out, "%s  %s  %s %s\n", e.ID, ui.Muted.Sprint(e.CreatedAt().Format(dateLayout)), e.Mood.Emoji(), e.Mood)
	}
	return nil
}

func (a *App) entryID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Entry id", a.out)
}

// Show decrypts and prints one entry.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	id, err := a.entryID(args)
	if err != nil {
		return err
	}

	var (
		entry   models.JournalEntry
		content string
	)
	err = a.session.WithPassphrase(func(p []byte) error {
		var err error
		entry, content, err = a.vault.ViewEntry(ctx, id, p)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s  %s\n\n%s\n", entry.Mood.Emoji(), entry.Mood, ui.Muted.Sprint(entry.CreatedAt().Format(time.RFC1123)), content)
	return nil
}

// Delete removes one entry after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.session.IsUnlocked() {
		return common.ErrLocked
	}
	id, err := a.entryID(args)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete entry %s? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.vault.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("no entry with id %s", id)
		}
		return err
	}
	fmt.Fprintln(a.out, ui.Success.Sprint("✓"), "Entry deleted")
	return nil
}
