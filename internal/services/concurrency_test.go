package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ChangePassphraseWithConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())
	require.NoError(t, e.session.Setup(ctx, []byte("alpha12345")))

	var seeded []models.JournalEntry
	for _, text := range []string{"seed one", "seed two"} {
		require.NoError(t, e.session.WithPassphrase(func(p []byte) error {
			entry, err := e.vault.CreateEntry(ctx, text, models.MoodOkay, p)
			seeded = append(seeded, entry)
			return err
		}))
	}

	const writers = 3
	want := map[string]bool{"seed two": true}
	for i := range writers {
		want[fmt.Sprintf("written %d", i)] = true
	}

	start := make(chan struct{})
	errs := make(chan error, writers+2)
	var wg sync.WaitGroup

	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- e.session.WithPassphrase(func(p []byte) error {
				_, err := e.vault.CreateEntry(ctx, fmt.Sprintf("written %d", i), models.MoodGood, p)
				return err
			})
		}()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		errs <- e.vault.DeleteEntry(ctx, seeded[0].ID)
	}()
	go func() {
		defer wg.Done()
		<-start
		_, err := e.session.ChangePassphrase(ctx, []byte("alpha12345"), []byte("beta67890"))
		errs <- err
	}()

	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := e.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, len(want))

	got := map[string]bool{}
	for _, entry := range stored {
		text, err := e.vault.DecryptEntry(entry, []byte("beta67890"))
		require.NoError(t, err, entry.ID)
		got[text] = true
	}
	assert.Equal(t, want, got)
	assert.Equal(t, StateDone, e.rotator.State())
}
