package catalog

import (
	"strings"
	"sync"

	"github.com/dshills/StrataDB/internal/errors"
)

// MemoryCatalog is an in-memory implementation of the Catalog interface.
// All operations are safe for concurrent use; planning sessions read through
// Snapshot() and are unaffected by DDL applied after the snapshot is taken.
type MemoryCatalog struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewMemoryCatalog creates a new in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		tables: make(map[string]*Table),
	}
}

// CreateTable creates a new table in the catalog.
func (c *MemoryCatalog) CreateTable(schema *TableSchema) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[schema.TableName]; exists {
		return nil, errors.DuplicateTableError(schema.TableName)
	}

	table := &Table{Name: schema.TableName}
	for _, def := range schema.Columns {
		table.Columns = append(table.Columns, &Column{
			Name:     def.Name,
			DataType: def.DataType,
			Nullable: def.Nullable,
		})
	}

	c.tables[schema.TableName] = table
	return table, nil
}

// GetTable retrieves a table by name.
func (c *MemoryCatalog) GetTable(tableName string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, exists := c.tables[tableName]
	if !exists {
		return nil, errors.UndefinedTableError(tableName)
	}
	return table, nil
}

// DropTable removes a table and its indexes from the catalog.
func (c *MemoryCatalog) DropTable(tableName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[tableName]; !exists {
		return errors.UndefinedTableError(tableName)
	}
	delete(c.tables, tableName)
	return nil
}

// ListTables returns all tables in the catalog.
func (c *MemoryCatalog) ListTables() []*Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tables := make([]*Table, 0, len(c.tables))
	for _, table := range c.tables {
		tables = append(tables, table)
	}
	return tables
}

// CreateIndex creates a new index on an existing table. The index is
// appended to the table's index list, preserving declaration order.
func (c *MemoryCatalog) CreateIndex(schema *IndexSchema) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, exists := c.tables[schema.TableName]
	if !exists {
		return nil, errors.UndefinedTableError(schema.TableName)
	}

	for _, col := range schema.Columns {
		if !table.HasColumn(col) {
			return nil, errors.UndefinedColumnError(col, schema.TableName)
		}
	}

	name := schema.IndexName
	if name == "" {
		name = indexName(schema.TableName, schema.Columns)
	}
	for _, idx := range table.Indexes {
		if idx.Name == name {
			return nil, errors.Newf(errors.DuplicateObject, "index \"%s\" already exists", name)
		}
	}

	index := &Index{
		Name:    name,
		Columns: append([]string(nil), schema.Columns...),
	}
	table.Indexes = append(table.Indexes, index)
	return index, nil
}

// DropIndex removes the index keyed on exactly the given columns.
func (c *MemoryCatalog) DropIndex(tableName string, columns []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, exists := c.tables[tableName]
	if !exists {
		return errors.UndefinedTableError(tableName)
	}

	name := indexName(tableName, columns)
	for i, idx := range table.Indexes {
		if idx.Name == name {
			table.Indexes = append(table.Indexes[:i], table.Indexes[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.UndefinedObject, "index \"%s\" does not exist", name)
}

// Snapshot returns a read-consistent copy of the catalog.
func (c *MemoryCatalog) Snapshot() Reader {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := &snapshot{tables: make(map[string]*Table, len(c.tables))}
	for name, table := range c.tables {
		snap.tables[name] = copyTable(table)
	}
	return snap
}

// snapshot is a frozen view of the catalog.
type snapshot struct {
	tables map[string]*Table
}

func (s *snapshot) GetTable(tableName string) (*Table, error) {
	table, exists := s.tables[tableName]
	if !exists {
		return nil, errors.UndefinedTableError(tableName)
	}
	return table, nil
}

func (s *snapshot) ListTables() []*Table {
	tables := make([]*Table, 0, len(s.tables))
	for _, table := range s.tables {
		tables = append(tables, table)
	}
	return tables
}

func copyTable(t *Table) *Table {
	out := &Table{Name: t.Name}
	for _, col := range t.Columns {
		c := *col
		out.Columns = append(out.Columns, &c)
	}
	for _, idx := range t.Indexes {
		out.Indexes = append(out.Indexes, &Index{
			Name:    idx.Name,
			Columns: append([]string(nil), idx.Columns...),
		})
	}
	return out
}

func indexName(tableName string, columns []string) string {
	return tableName + "_" + strings.Join(columns, "_") + "_idx"
}
