package planner

import (
	"github.com/dshills/StrataDB/internal/sql/ast"
	"github.com/dshills/StrataDB/internal/sql/types"
)

// Query is the fully resolved statement descriptor handed to the planner by
// the parser layer. It is owned by one Plan() call for its duration; the
// planner copies what it mutates, so the descriptor can be planned again.
type Query struct {
	// Stmt is the statement-kind-tagged parse tree.
	Stmt ast.Statement

	// Tables lists the FROM-clause tables in declaration order. The order
	// is significant: it breaks ties when orienting the first join.
	Tables []string

	// Conditions is the unresolved predicate set for the statement.
	Conditions []*Condition

	// Columns are the projected output columns.
	Columns []ColumnRef

	// GroupColumns are the GROUP BY columns, if any.
	GroupColumns []ColumnRef

	// Having are the HAVING-clause predicates, if any.
	Having []*Condition

	// HasAggregates is set when the projection contains aggregate functions.
	HasAggregates bool

	// Values are the literal row values of an INSERT.
	Values []types.Value

	// SetClauses are the assignment clauses of an UPDATE.
	SetClauses []ast.SetClause
}
