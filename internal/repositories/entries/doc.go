// Package entries provides the persistence layer for journal entries.
//
// # Overview
//
// The package defines a Repository interface for loading and replacing the
// entry collection. The JSON implementation (KVRepository) stores the whole
// collection as one JSON array under storage.KeyEntries, in the layout:
//
//	[{"id": "...", "timestamp": 1700000000000,
//	  "encryptedData": {"encrypted": "<b64>", "salt": "<b64>", "iv": "<b64>"},
//	  "mood": "down"}]
//
// Because it works over a storage.KV, the same repository can be bound to a
// Store or to the transactional handle passed to Store.Update.
//
// Typical Usage
//
//	repo := entries.NewKVRepository(store)
//	list, _ := repo.GetAll(ctx)
//	_ = repo.SaveAll(ctx, list)
//
//	_ = store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
//	    return entries.NewKVRepository(tx).SaveAll(ctx, rotated)
//	})
package entries
