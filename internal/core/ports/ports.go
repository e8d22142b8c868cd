// Package ports defines the interfaces (ports) for the hexagonal architecture.
package ports

import (
	"context"

	"github.com/ctorralba/pgprobe/internal/core/domain"
)

// Conn is one live database connection handle.
type Conn interface {
	// Query sends sql verbatim and returns the result as text rows.
	Query(ctx context.Context, sql string) (*domain.QueryResult, error)

	// Close releases the connection. Safe to call on an already-broken handle.
	Close(ctx context.Context) error
}

// DatabaseGateway opens connections. It is the boundary to the driver:
// everything behind Open is opaque to the core.
type DatabaseGateway interface {
	Open(ctx context.Context, profile domain.ConnectionProfile) (Conn, error)
}

// ProfileStore persists named connection profiles.
type ProfileStore interface {
	// Save appends or overwrites the record for name.
	Save(name string, profile domain.ConnectionProfile) error

	// Load returns the profile saved under name.
	Load(name string) (domain.ConnectionProfile, error)

	// List returns the saved profile names in store order.
	List() ([]string, error)
}
