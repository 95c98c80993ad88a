package planner

import "fmt"

// ConditionPool owns the unresolved predicate set for one planning call.
// Extraction is destructive: every condition leaves the pool exactly once,
// so no condition can be attached to two plan nodes.
type ConditionPool struct {
	conds []*Condition
}

// NewConditionPool creates a pool over the given conditions. The pool takes
// ownership of the slice.
func NewConditionPool(conds []*Condition) *ConditionPool {
	return &ConditionPool{conds: conds}
}

// Len returns the number of conditions remaining in the pool.
func (p *ConditionPool) Len() int {
	return len(p.conds)
}

// PopSingleTable removes and returns every condition that is fully
// resolvable against the given table: a column of the table compared to a
// literal, or two columns both belonging to the table. The relative order of
// the remaining conditions is preserved.
func (p *ConditionPool) PopSingleTable(table string) []*Condition {
	var popped []*Condition
	remaining := p.conds[:0]
	for _, c := range p.conds {
		if isSingleTable(c, table) {
			popped = append(popped, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	p.conds = remaining
	return popped
}

// TakeAll removes and returns every remaining condition, leaving the pool
// empty. After the per-table extraction pass these are all two-table join
// conditions.
func (p *ConditionPool) TakeAll() []*Condition {
	conds := p.conds
	p.conds = nil
	return conds
}

func isSingleTable(c *Condition, table string) bool {
	if c.Lhs.Table != table {
		return false
	}
	return c.RhsIsValue || c.Rhs.Table == table
}

// JoinSideMatch classifies how a two-table join condition relates to a
// candidate leaf or subtree.
type JoinSideMatch int

const (
	// MatchNone: the candidate covers neither side of the comparison.
	MatchNone JoinSideMatch = iota
	// MatchLeftSide: the candidate covers the left-hand table.
	MatchLeftSide
	// MatchRightSide: the candidate covers the right-hand table.
	MatchRightSide
	// MatchOwned: the condition has already been attached below the candidate.
	MatchOwned
)

func (m JoinSideMatch) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchLeftSide:
		return "left"
	case MatchRightSide:
		return "right"
	case MatchOwned:
		return "owned"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ClassifyJoinSide reports which side of a column-to-column condition the
// given table satisfies.
func ClassifyJoinSide(c *Condition, table string) JoinSideMatch {
	switch {
	case c.Lhs.Table == table:
		return MatchLeftSide
	case !c.RhsIsValue && c.Rhs.Table == table:
		return MatchRightSide
	default:
		return MatchNone
	}
}
