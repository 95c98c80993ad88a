package planner

import (
	"fmt"

	"github.com/dshills/StrataDB/internal/sql/types"
)

// CompOp is a comparison operator in a condition.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

func (op CompOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	default:
		return fmt.Sprintf("Unknown(%d)", int(op))
	}
}

// Swapped returns the operator that preserves the comparison's meaning when
// the two sides are exchanged: < and > trade places, <= and >= trade places,
// = and <> are symmetric.
func (op CompOp) Swapped() CompOp {
	switch op {
	case OpLess:
		return OpGreater
	case OpGreater:
		return OpLess
	case OpLessEqual:
		return OpGreaterEqual
	case OpGreaterEqual:
		return OpLessEqual
	default:
		return op
	}
}

// ColumnRef identifies a column of a base table.
type ColumnRef struct {
	Table  string
	Column string
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

// Condition is one comparison predicate from the WHERE or HAVING clause.
// The right-hand side is either a literal value or another column, never
// both. Conditions are mutable while the plan is under construction: the
// join-tree builder may swap the two sides (inverting the operator) to
// normalize orientation against the tree.
type Condition struct {
	Lhs        ColumnRef
	Op         CompOp
	RhsIsValue bool
	Rhs        ColumnRef
	Value      types.Value
}

// SwapSides exchanges the two column sides and inverts the operator. Only
// meaningful for column-to-column conditions.
func (c *Condition) SwapSides() {
	c.Lhs, c.Rhs = c.Rhs, c.Lhs
	c.Op = c.Op.Swapped()
}

func (c *Condition) String() string {
	if c.RhsIsValue {
		return fmt.Sprintf("%s %s %s", c.Lhs, c.Op, QuoteValue(c.Value))
	}
	return fmt.Sprintf("%s %s %s", c.Lhs, c.Op, c.Rhs)
}

// cloneConditions deep-copies a condition list. Planning works on copies so
// that re-planning the same query descriptor yields an identical tree even
// though planning mutates condition orientation.
func cloneConditions(conds []*Condition) []*Condition {
	if conds == nil {
		return nil
	}
	out := make([]*Condition, len(conds))
	for i, c := range conds {
		cc := *c
		out[i] = &cc
	}
	return out
}
