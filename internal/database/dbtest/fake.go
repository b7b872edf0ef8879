// Package dbtest provides an in-memory database.Driver for tests.
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/joacominatel/cosmoschema/internal/database"
)

// ErrNotConnected is returned by calls made while the driver is closed.
var ErrNotConnected = errors.New("not connected")

// Driver is a database.Driver backed by a map of table name to columns.
type Driver struct {
	mu sync.Mutex

	Tables     map[string][]database.Column
	ConnectErr error
	QueryErr   error
	CloseErr   error
	Name       string

	connected bool
	connects  int
	closes    int
	queries   int
	lastDSN   string
}

// New returns a driver serving tables.
func New(tables map[string][]database.Column) *Driver {
	return &Driver{Tables: tables, Name: "testdb"}
}

func (d *Driver) Connect(_ context.Context, dsn string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connects++
	d.lastDSN = dsn
	if d.ConnectErr != nil {
		return d.ConnectErr
	}
	d.connected = true
	return nil
}

func (d *Driver) Close(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.CloseErr
}

func (d *Driver) Ping(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return ErrNotConnected
	}
	return d.QueryErr
}

func (d *Driver) GetColumns(ctx context.Context, table string) ([]database.Column, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries++
	if !d.connected {
		return nil, ErrNotConnected
	}
	if d.QueryErr != nil {
		return nil, d.QueryErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cols := d.Tables[table]
	out := make([]database.Column, len(cols))
	copy(out, cols)
	return out, nil
}

func (d *Driver) DatabaseName() string {
	return d.Name
}

// Connects returns how many times Connect was called.
func (d *Driver) Connects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connects
}

// Closes returns how many times Close was called.
func (d *Driver) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// Queries returns how many times GetColumns was called.
func (d *Driver) Queries() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queries
}

// Connected reports whether the driver holds an open connection.
func (d *Driver) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// LastDSN returns the DSN passed to the most recent Connect.
func (d *Driver) LastDSN() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastDSN
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
