package database

import "context"

// Driver defines the interface for database operations.
// All implementations must be safe for concurrent use.
type Driver interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, dsn string) error

	// Close closes the database connection. Closing a driver that was never
	// connected, or was already closed, returns nil.
	Close(ctx context.Context) error

	// Ping checks if the connection is alive.
	Ping(ctx context.Context) error

	// GetColumns returns all columns for a table ordered by ordinal position.
	// An unknown table yields an empty slice and a nil error.
	GetColumns(ctx context.Context, table string) ([]Column, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string
}
