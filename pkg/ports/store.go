package ports

import (
	"context"

	"github.com/aretw0/typeb/pkg/keysheet"
)

// KeyStore persists named key sheets so operators can pick "today's key" by name.
type KeyStore interface {
	// Save stores the sheet under its Name, replacing any previous sheet.
	Save(ctx context.Context, sheet keysheet.Sheet) error

	// Load retrieves a sheet by name.
	// Returns domain.ErrKeyNotFound if no sheet has that name.
	Load(ctx context.Context, name string) (keysheet.Sheet, error)

	// Delete removes a sheet. Deleting a missing sheet is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored sheets in ascending order.
	List(ctx context.Context) ([]string, error)
}
