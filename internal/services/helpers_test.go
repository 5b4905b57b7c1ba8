package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// faultyStore wraps a MemoryStore and injects failures.
type faultyStore struct {
	*storage.MemoryStore
	setErr    error
	updateErr error
}

func newFaultyStore() *faultyStore {
	return &faultyStore{MemoryStore: storage.NewMemoryStore()}
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

// Update stages fn's writes and then fails, so the staged writes are
// discarded the same way a failed commit would discard them.
func (f *faultyStore) Update(ctx context.Context, fn func(ctx context.Context, tx storage.KV) error) error {
	if f.updateErr == nil {
		return f.MemoryStore.Update(ctx, fn)
	}
	_ = f.MemoryStore.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return f.updateErr
	})
	return f.updateErr
}

type env struct {
	store    storage.Store
	audit    *AuditRecorder
	verifier *Verifier
	vault    *Vault
	rotator  *Rotator
	session  *Session
	privacy  *Privacy
}

func newEnv(t *testing.T, store storage.Store) *env {
	t.Helper()
	log := logging.Discard()
	audit := NewAuditRecorder(store, 0, log)
	verifier := NewVerifier(store)
	vault := NewVault(store, audit, log)
	rotator := NewRotator(store, vault, audit, log)
	session := NewSession(verifier, rotator, audit, log)
	privacy := NewPrivacy(store, vault, session, audit, log)
	return &env{
		store:    store,
		audit:    audit,
		verifier: verifier,
		vault:    vault,
		rotator:  rotator,
		session:  session,
		privacy:  privacy,
	}
}

func snapshot(t *testing.T, kv storage.KV, keys ...string) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := kv.Get(context.Background(), k)
		require.NoError(t, err)
		out[k] = v
	}
	return out
}

func actions(t *testing.T, a *AuditRecorder) []models.AuditAction {
	t.Helper()
	logs, err := a.All(context.Background())
	require.NoError(t, err)
	out := make([]models.AuditAction, len(logs))
	for i, l := range logs {
		out[i] = l.Action
	}
	return out
}
