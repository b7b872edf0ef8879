package postgres

// SQL queries for PostgreSQL metadata introspection.
const (
	queryGetColumns = `
		SELECT
			c.column_name::text,
			c.data_type::text,
			c.character_maximum_length::int,
			c.is_nullable::text,
			c.column_default::text,
			c.ordinal_position::int
		FROM information_schema.columns c
		WHERE c.table_name = $1
		ORDER BY c.ordinal_position`
)
