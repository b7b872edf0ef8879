package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/joacominatel/cosmoschema/internal/database"
)

var errNotConnected = errors.New("not connected")

// Driver implements the database.Driver interface for PostgreSQL.
//
// It owns a single connection. pgx connections are not safe for concurrent
// use, so every statement runs under mu and at most one is in flight.
type Driver struct {
	mu     sync.Mutex
	conn   *pgx.Conn
	dbName string
}

// New creates a new PostgreSQL driver.
func New() *Driver {
	return &Driver{}
}

// Connect opens the connection and verifies it with a ping.
func (d *Driver) Connect(ctx context.Context, dsn string) error {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		return errors.New("already connected")
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("ping: %w", err)
	}

	d.conn = conn
	d.dbName = cfg.Database
	return nil
}

// Close closes the connection. It is a no-op when not connected.
func (d *Driver) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	conn := d.conn
	d.conn = nil
	if conn.IsClosed() {
		return nil
	}
	if err := conn.Close(ctx); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks if the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return errNotConnected
	}
	return d.conn.Ping(statementContext(ctx))
}

// GetColumns returns column metadata for a table.
func (d *Driver) GetColumns(ctx context.Context, table string) ([]database.Column, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil, errNotConnected
	}

	rows, err := d.conn.Query(statementContext(ctx), queryGetColumns, table)
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	defer rows.Close()

	var columns []database.Column
	for rows.Next() {
		var col database.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &col.MaxLength, &nullable, &col.Default, &col.OrdinalPos); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.IsNullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	return columns, nil
}

// statementContext detaches ctx from cancellation. pgx closes a connection
// whose in-flight statement is interrupted, and the driver never reconnects.
func statementContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// DatabaseName returns the name of the connected database.
func (d *Driver) DatabaseName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dbName
}
