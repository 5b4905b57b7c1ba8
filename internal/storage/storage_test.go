package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// stores returns every Store implementation so the contract tests run on each.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			v, err := st.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, st.Set(ctx, "k", []byte("v1")))
			v, err = st.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), v)

			require.NoError(t, st.Set(ctx, "k", []byte("v2")))
			v, err = st.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), v)

			require.NoError(t, st.Remove(ctx, "k"))
			v, err = st.Get(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, st.Remove(ctx, "k"), "removing an absent key is not an error")
		})
	}
}

func TestStore_UpdateCommitsOnSuccess(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Set(ctx, "gone", []byte("x")))

			err := st.Update(ctx, func(ctx context.Context, tx KV) error {
				if err := tx.Set(ctx, KeyEntries, []byte("[]")); err != nil {
					return err
				}
				if err := tx.Set(ctx, KeyPassphraseHash, []byte("abc")); err != nil {
					return err
				}
				v, err := tx.Get(ctx, KeyEntries)
				require.NoError(t, err)
				require.Equal(t, []byte("[]"), v, "tx must read its own writes")
				return tx.Remove(ctx, "gone")
			})
			require.NoError(t, err)

			v, err := st.Get(ctx, KeyEntries)
			require.NoError(t, err)
			assert.Equal(t, []byte("[]"), v)
			v, err = st.Get(ctx, KeyPassphraseHash)
			require.NoError(t, err)
			assert.Equal(t, []byte("abc"), v)
			v, err = st.Get(ctx, "gone")
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Set(ctx, KeyEntries, []byte("old")))
			require.NoError(t, st.Set(ctx, KeyPassphraseHash, []byte("old-hash")))

			boom := errors.New("boom")
			err := st.Update(ctx, func(ctx context.Context, tx KV) error {
				require.NoError(t, tx.Set(ctx, KeyEntries, []byte("new")))
				require.NoError(t, tx.Remove(ctx, KeyPassphraseHash))
				return boom
			})
			require.ErrorIs(t, err, boom)

			v, err := st.Get(ctx, KeyEntries)
			require.NoError(t, err)
			assert.Equal(t, []byte("old"), v, "must roll back when fn returns error")
			v, err = st.Get(ctx, KeyPassphraseHash)
			require.NoError(t, err)
			assert.Equal(t, []byte("old-hash"), v)
		})
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, st.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, st.Set(ctx, "k", []byte("v")), context.Canceled)
	_, err := st.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	st, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, KeyEntries, []byte(`[{"id":"1"}]`)))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v, err := st.Get(ctx, KeyEntries)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), v)
}

func TestSQLiteStore_UpdateRollsBackOnPanic(t *testing.T) {
	st := openSQLite(t)
	ctx := context.Background()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		v, err := st.Get(ctx, "k")
		require.NoError(t, err)
		require.Nil(t, v, "must roll back on panic")
	}()

	_ = st.Update(ctx, func(ctx context.Context, tx KV) error {
		require.NoError(t, tx.Set(ctx, "k", []byte("v")))
		panic("kaput")
	})
}

func TestSQLiteStore_UpdateBeginError(t *testing.T) {
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	err = st.Update(context.Background(), func(ctx context.Context, tx KV) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}
