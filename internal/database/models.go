package database

// Column represents a table column as reported by the catalog.
type Column struct {
	Name       string
	DataType   string
	MaxLength  *int
	IsNullable bool
	Default    *string
	OrdinalPos int
}
