package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_ReloadAndDecrypt(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	e := newEnv(t, st)

	_, err := e.vault.CreateEntry(ctx, "Today was hard", models.MoodDown, []byte("correcthorse123"))
	require.NoError(t, err)

	reloaded := NewVault(st, nil, logging.Discard())
	all, err := reloaded.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.MoodDown, all[0].Mood)

	text, err := reloaded.DecryptEntry(all[0], []byte("correcthorse123"))
	require.NoError(t, err)
	assert.Equal(t, "Today was hard", text)

	_, err = reloaded.DecryptEntry(all[0], []byte("wrongpass"))
	require.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestVault_CreateEntryAudit(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())

	_, err := e.vault.CreateEntry(ctx, "Today was hard", models.MoodDown, []byte("correcthorse123"))
	require.NoError(t, err)

	logs, err := e.audit.All(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionEntryCreated, logs[0].Action)
	assert.Equal(t, "Entry created (14 characters, mood: 😔 down)", logs[0].Details)
	assert.NotContains(t, logs[0].Details, "hard")
}

func TestVault_NewestFirst(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	e.vault.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}

	pass := []byte("correcthorse123")
	first, err := e.vault.CreateEntry(ctx, "first", models.MoodGood, pass)
	require.NoError(t, err)
	second, err := e.vault.CreateEntry(ctx, "second", models.MoodGreat, pass)
	require.NoError(t, err)

	all, err := e.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Greater(t, all[0].Timestamp, all[1].Timestamp)
	assert.NotEqual(t, all[0].EncryptedData.Salt, all[1].EncryptedData.Salt)
}

func TestVault_CreateEntryValidation(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	e := newEnv(t, st)

	tests := []struct {
		name    string
		content string
		mood    models.Mood
	}{
		{"unknown mood", "hello", models.Mood("ecstatic")},
		{"empty mood", "hello", models.Mood("")},
		{"blank content", "   ", models.MoodOkay},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.vault.CreateEntry(ctx, tc.content, tc.mood, []byte("correcthorse123"))
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}

	raw, err := st.Get(ctx, storage.KeyEntries)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestVault_CreateEntryStoreFailure(t *testing.T) {
	ctx := context.Background()
	st := newFaultyStore()
	e := newEnv(t, st)
	pass := []byte("correcthorse123")

	_, err := e.vault.CreateEntry(ctx, "kept", models.MoodOkay, pass)
	require.NoError(t, err)

	st.setErr = errStoreDown
	_, err = e.vault.CreateEntry(ctx, "lost", models.MoodOkay, pass)
	require.ErrorIs(t, err, errStoreDown)
	assert.Len(t, e.vault.Entries(), 1)
}

func TestVault_ViewEntry(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())
	pass := []byte("correcthorse123")
	e.vault.now = func() time.Time { return time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local) }

	created, err := e.vault.CreateEntry(ctx, "walked by the river", models.MoodGreat, pass)
	require.NoError(t, err)

	entry, text, err := e.vault.ViewEntry(ctx, created.ID, pass)
	require.NoError(t, err)
	assert.Equal(t, created.ID, entry.ID)
	assert.Equal(t, "walked by the river", text)

	logs, err := e.audit.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ActionEntryViewed, logs[0].Action)
	assert.Equal(t, "Entry from Jun 2, 2025 decrypted and viewed", logs[0].Details)

	_, _, err = e.vault.ViewEntry(ctx, "missing", pass)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, _, err = e.vault.ViewEntry(ctx, created.ID, []byte("wrongpass"))
	require.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestVault_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())
	pass := []byte("correcthorse123")

	keep, err := e.vault.CreateEntry(ctx, "keep", models.MoodGood, pass)
	require.NoError(t, err)
	drop, err := e.vault.CreateEntry(ctx, "drop", models.MoodDown, pass)
	require.NoError(t, err)

	require.NoError(t, e.vault.DeleteEntry(ctx, drop.ID))

	all, err := e.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	err = e.vault.DeleteEntry(ctx, drop.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	assert.Equal(t, []models.AuditAction{
		models.ActionEntryDeleted,
		models.ActionEntryCreated,
		models.ActionEntryCreated,
	}, actions(t, e.audit))
}

func TestVault_FilterByMoodAndSnapshot(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, storage.NewMemoryStore())
	pass := []byte("correcthorse123")

	assert.Empty(t, e.vault.Entries())

	for _, m := range []models.Mood{models.MoodDown, models.MoodGreat, models.MoodDown} {
		_, err := e.vault.CreateEntry(ctx, "x", m, pass)
		require.NoError(t, err)
	}

	assert.Len(t, e.vault.FilterByMood(models.MoodDown), 2)
	assert.Len(t, e.vault.FilterByMood(models.MoodGreat), 1)
	assert.Empty(t, e.vault.FilterByMood(models.MoodStressed))

	snap := e.vault.Entries()
	snap[0].Mood = models.MoodOkay
	assert.NotEqual(t, models.MoodOkay, e.vault.Entries()[0].Mood, "snapshot must be a copy")
}
