package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/joacominatel/cosmoschema/internal/config"
	"github.com/joacominatel/cosmoschema/internal/database"
	"github.com/joacominatel/cosmoschema/internal/database/dbtest"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		ConnectionString: "postgres://test@localhost/testdb",
		Transport:        config.TransportStdio,
	}
}

func usersTables() map[string][]database.Column {
	return map[string][]database.Column{
		"users": {
			{Name: "id", DataType: "integer", OrdinalPos: 1},
			{Name: "email", DataType: "varchar", MaxLength: dbtest.Int(255), OrdinalPos: 2},
			{Name: "bio", DataType: "text", IsNullable: true, OrdinalPos: 3},
		},
	}
}
