package app

import (
	"context"
	"errors"

	"github.com/joacominatel/cosmoschema/internal/database"
)

// ErrEmptyTableName is returned when GetTableSchema is called without a table.
var ErrEmptyTableName = errors.New("table_name is required")

// Report is the result of a schema lookup.
type Report struct {
	Table   string
	Columns []database.Column
}

// Found reports whether the catalog returned any columns.
func (r *Report) Found() bool {
	return len(r.Columns) > 0
}

// String renders the report, or the not-found message when it has no columns.
func (r *Report) String() string {
	if !r.Found() {
		return NotFoundMessage(r.Table)
	}
	return FormatReport(r.Table, r.Columns)
}

// Service answers schema questions using the connection held by a Lifespan.
// It keeps no state between calls.
type Service struct {
	lifespan *Lifespan
}

// NewService creates a new application service.
func NewService(lifespan *Lifespan) *Service {
	return &Service{lifespan: lifespan}
}

// Lifespan returns the lifespan the service borrows its connection from.
func (s *Service) Lifespan() *Lifespan {
	return s.lifespan
}

// LoadReport fetches the columns of table. A table with no columns is not an
// error; check Report.Found.
func (s *Service) LoadReport(ctx context.Context, table string) (*Report, error) {
	if table == "" {
		return nil, ErrEmptyTableName
	}
	columns, err := s.lifespan.Driver().GetColumns(ctx, table)
	if err != nil {
		return nil, &ErrDatabase{Op: OpQuery, Cause: err}
	}
	return &Report{Table: table, Columns: columns}, nil
}

// GetTableSchema returns the formatted schema of table, or the not-found
// message if the catalog has no such table. Database failures are returned as
// *ErrDatabase and never as not-found text.
func (s *Service) GetTableSchema(ctx context.Context, table string) (string, error) {
	report, err := s.LoadReport(ctx, table)
	if err != nil {
		return "", err
	}
	return report.String(), nil
}

// Ping checks that the shared connection is still usable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.lifespan.Driver().Ping(ctx); err != nil {
		return &ErrDatabase{Op: OpQuery, Cause: err}
	}
	return nil
}
