// Package ast declares the statement shapes the planner dispatches on.
// Parsing and name resolution happen upstream; the planner receives these
// nodes fully resolved.
package ast

import (
	"github.com/dshills/StrataDB/internal/sql/types"
)

// Statement is the base interface for all SQL statements.
type Statement interface {
	statementNode()
}

// ColumnDef defines a column in a CREATE TABLE statement.
type ColumnDef struct {
	Name string
	Type types.DataType
}

// SetClause is one column assignment in an UPDATE statement.
type SetClause struct {
	Column string
	Value  types.Value
}

// OrderBy is the ORDER BY clause of a SELECT statement. The column name is
// resolved against the query's tables at planning time.
type OrderBy struct {
	Column     string
	Descending bool
}

// SelectStmt represents a SELECT statement.
type SelectStmt struct {
	OrderBy *OrderBy
}

// InsertStmt represents an INSERT statement.
type InsertStmt struct {
	TableName string
}

// DeleteStmt represents a DELETE statement.
type DeleteStmt struct {
	TableName string
}

// UpdateStmt represents an UPDATE statement.
type UpdateStmt struct {
	TableName string
}

// CreateTableStmt represents a CREATE TABLE statement.
type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

// DropTableStmt represents a DROP TABLE statement.
type DropTableStmt struct {
	TableName string
}

// CreateIndexStmt represents a CREATE INDEX statement.
type CreateIndexStmt struct {
	TableName string
	Columns   []string
}

// DropIndexStmt represents a DROP INDEX statement.
type DropIndexStmt struct {
	TableName string
	Columns   []string
}

// ShowIndexStmt represents a SHOW INDEX statement.
type ShowIndexStmt struct {
	TableName string
}

func (*SelectStmt) statementNode()      {}
func (*InsertStmt) statementNode()      {}
func (*DeleteStmt) statementNode()      {}
func (*UpdateStmt) statementNode()      {}
func (*CreateTableStmt) statementNode() {}
func (*DropTableStmt) statementNode()   {}
func (*CreateIndexStmt) statementNode() {}
func (*DropIndexStmt) statementNode()   {}
func (*ShowIndexStmt) statementNode()   {}
