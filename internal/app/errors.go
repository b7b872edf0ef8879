package app

import "fmt"

// Database operations reported by ErrDatabase.
const (
	OpConnect = "connect"
	OpQuery   = "query"
	OpClose   = "close"
)

// ErrDatabase represents a failure while opening, querying, or closing the
// database connection.
type ErrDatabase struct {
	Op    string
	Cause error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s error: %v", e.Op, e.Cause)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Cause
}

// ErrConfig represents a configuration error.
type ErrConfig struct {
	Cause error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config error: %v", e.Cause)
}

func (e *ErrConfig) Unwrap() error {
	return e.Cause
}
