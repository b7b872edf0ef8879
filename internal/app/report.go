package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joacominatel/cosmoschema/internal/database"
)

// NotFoundMessage is returned in place of a report when the catalog has no
// columns for the table.
func NotFoundMessage(table string) string {
	return fmt.Sprintf("No table found with name '%s'", table)
}

// FormatReport renders columns, already in ordinal order, as the text
// contract returned by get_table_schema.
func FormatReport(table string, columns []database.Column) string {
	var b strings.Builder
	b.WriteString("Table: ")
	b.WriteString(table)
	b.WriteString("\n\nColumns:")
	for _, col := range columns {
		b.WriteString("\n")
		b.WriteString(FormatColumn(col))
	}
	return b.String()
}

// FormatColumn renders a single column line, e.g.
// "  - email: varchar(255) NOT NULL DEFAULT ''::text".
func FormatColumn(col database.Column) string {
	var b strings.Builder
	b.WriteString("  - ")
	b.WriteString(col.Name)
	b.WriteString(": ")
	b.WriteString(col.DataType)
	if col.MaxLength != nil && *col.MaxLength != 0 {
		b.WriteString("(")
		b.WriteString(strconv.Itoa(*col.MaxLength))
		b.WriteString(")")
	}
	if col.IsNullable {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	if col.Default != nil && *col.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(*col.Default)
	}
	return b.String()
}
