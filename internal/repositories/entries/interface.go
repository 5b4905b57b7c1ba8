package entries

import (
	"context"

	"github.com/dmitrijs2005/reflect/internal/models"
)

// Repository loads and replaces the persisted entry collection.
// The collection is always written whole; there are no partial updates.
type Repository interface {
	// GetAll returns every entry in persisted order. A missing record yields
	// an empty slice.
	GetAll(ctx context.Context) ([]models.JournalEntry, error)

	// SaveAll overwrites the stored collection with entries.
	SaveAll(ctx context.Context, entries []models.JournalEntry) error

	// Size returns the byte size of the stored record.
	Size(ctx context.Context) (int, error)

	// Clear removes the stored collection.
	Clear(ctx context.Context) error
}
