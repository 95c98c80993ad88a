package catalog

import (
	"github.com/dshills/StrataDB/internal/sql/types"
)

// Catalog manages database metadata: tables, columns and indexes.
type Catalog interface {
	Reader

	// Table operations
	CreateTable(schema *TableSchema) (*Table, error)
	DropTable(tableName string) error

	// Index operations
	CreateIndex(schema *IndexSchema) (*Index, error)
	DropIndex(tableName string, columns []string) error

	// Snapshot returns a read-consistent view of the catalog. The planner
	// uses one snapshot per planning call; DDL applied to the catalog after
	// the snapshot is taken is not visible through it.
	Snapshot() Reader
}

// Reader is the read-only catalog surface the planner consumes.
type Reader interface {
	GetTable(tableName string) (*Table, error)
	ListTables() []*Table
}

// TableSchema defines the structure for creating a new table.
type TableSchema struct {
	TableName string
	Columns   []ColumnDef
}

// ColumnDef defines a column in a table.
type ColumnDef struct {
	Name     string
	DataType types.DataType
	Nullable bool
}

// IndexSchema defines the structure for creating a new index.
type IndexSchema struct {
	TableName string
	IndexName string
	Columns   []string
}

// Table represents a table with its metadata.
type Table struct {
	Name    string
	Columns []*Column
	// Indexes in declaration order. Declaration order is significant: the
	// planner breaks index-selection ties in favor of the earlier index.
	Indexes []*Index
}

// Column represents a column with its metadata.
type Column struct {
	Name     string
	DataType types.DataType
	Nullable bool
}

// Index represents an index on a table.
type Index struct {
	Name    string
	Columns []string // column names in index key order
}

// Column returns the named column, or false when the table has no such column.
func (t *Table) Column(name string) (*Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return nil, false
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}
