// Package contextstore persists a user's tenant/project context selection
// so it survives across sessions. Drivers for PostgreSQL and Spanner live
// in subpackages.
package contextstore

import (
	"context"
	"time"
)

// Selection is a user's confirmed tenant/project choice. Empty IDs mean
// no selection at that level.
type Selection struct {
	Username  string    `spanner:"Username"  db:"Username"`
	TenantID  string    `spanner:"TenantId"  db:"TenantId"`
	ProjectID string    `spanner:"ProjectId" db:"ProjectId"`
	Confirmed bool      `spanner:"Confirmed" db:"Confirmed"`
	UpdatedAt time.Time `spanner:"UpdatedAt" db:"UpdatedAt"`
}

// Store persists context selections keyed by username.
type Store interface {
	// Selection returns the stored selection for username. A missing
	// row is a NotFound message, not a driver error.
	Selection(ctx context.Context, username string) (*Selection, error)

	// SaveSelection inserts or replaces the selection for username.
	SaveSelection(ctx context.Context, selection *Selection) error

	// ClearSelection removes the selection for username. Clearing an
	// absent selection is not an error.
	ClearSelection(ctx context.Context, username string) error
}
