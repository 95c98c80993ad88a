package planner

import (
	"github.com/dshills/StrataDB/internal/catalog"
	"github.com/dshills/StrataDB/internal/config"
	"github.com/dshills/StrataDB/internal/errors"
	"github.com/dshills/StrataDB/internal/log"
)

// joinTreeBuilder assembles scan leaves and binary joins into one connected
// tree covering every FROM-clause table exactly once.
type joinTreeBuilder struct {
	catalog catalog.Reader
	cfg     config.PlannerConfig
	logger  log.Logger
}

// build turns the query's table list plus its condition pool into a single
// plan node covering all tables. The pool is drained completely: every
// condition ends up on exactly one scan or join node.
func (b *joinTreeBuilder) build(q *Query, pool *ConditionPool) (Plan, error) {
	scans := make([]*ScanPlan, len(q.Tables))
	for i, table := range q.Tables {
		scan, err := b.buildScanLeaf(table, pool.PopSingleTable(table))
		if err != nil {
			return nil, err
		}
		scans[i] = scan
	}

	if len(q.Tables) == 1 {
		return scans[0], nil
	}

	// Remaining conditions reference two tables each.
	conds := pool.TakeAll()

	attached := make([]bool, len(scans))
	joined := make(map[string]bool, len(q.Tables))

	// popScan hands out the leaf for a table and marks it consumed.
	popScan := func(table string) (Plan, bool) {
		for i, scan := range scans {
			if scan.Table == table && !attached[i] {
				attached[i] = true
				joined[table] = true
				return scan, true
			}
		}
		return nil, false
	}

	var tree Plan

	if len(conds) > 0 {
		first := conds[0]
		left, lok := popScan(first.Lhs.Table)
		right, rok := popScan(first.Rhs.Table)
		if !lok || !rok {
			return nil, errors.InternalErrorf("join condition %s references a table outside the FROM clause", first)
		}

		// Keep the first FROM-clause table as the join's left child so the
		// output row order is stable across equivalent queries.
		if first.Lhs.Table == q.Tables[1] && first.Rhs.Table == q.Tables[0] {
			left, right = right, left
			first.SwapSides()
		}

		var err error
		tree, err = b.buildFirstJoin(first, left, right)
		if err != nil {
			return nil, err
		}
		conds = conds[1:]
	} else {
		tree = scans[0]
		attached[0] = true
		joined[q.Tables[0]] = true
	}

	for _, c := range conds {
		var freshLeft, freshRight Plan
		reversed := false
		if !joined[c.Lhs.Table] {
			freshLeft, _ = popScan(c.Lhs.Table)
		}
		if !c.RhsIsValue && !joined[c.Rhs.Table] {
			freshRight, _ = popScan(c.Rhs.Table)
			reversed = true
		}

		switch {
		case freshLeft != nil && freshRight != nil:
			// Neither side is in the tree yet: join the two fresh leaves on
			// this condition, then cross-merge the accumulated tree in.
			inner := NewJoinPlan(NestedLoopJoin, freshLeft, freshRight, []*Condition{c})
			tree = NewJoinPlan(NestedLoopJoin, inner, tree, nil)
		case freshLeft != nil || freshRight != nil:
			// One side is new: attach it as the left child of a join that
			// carries this condition. Normalize so the new leaf matches the
			// condition's left-hand side.
			fresh := freshLeft
			if reversed {
				c.SwapSides()
				fresh = freshRight
			}
			tree = NewJoinPlan(NestedLoopJoin, fresh, tree, []*Condition{c})
		default:
			// Both sides are already covered: push the condition down to the
			// lowest join node covering both tables.
			if res := pushCondition(c, tree); res != MatchOwned {
				return nil, errors.InternalErrorf("failed to place join condition %s (got %s)", c, res)
			}
		}
	}

	// Tables no condition touched are merged with condition-free cross
	// joins, so the tree always covers the full FROM-clause set.
	for i, scan := range scans {
		if !attached[i] {
			attached[i] = true
			tree = NewJoinPlan(NestedLoopJoin, scan, tree, nil)
		}
	}

	return tree, nil
}

// buildScanLeaf creates the scan leaf for one table: an index scan when a
// composite index matches the table's conditions, otherwise a sequential
// scan with all conditions as residual filters.
func (b *joinTreeBuilder) buildScanLeaf(table string, conds []*Condition) (*ScanPlan, error) {
	tab, err := b.catalog.GetTable(table)
	if err != nil {
		return nil, err
	}

	columns, reordered, found := SelectIndex(tab, conds)
	if !found {
		return NewSeqScan(table, conds), nil
	}
	b.logger.Debug("index scan selected",
		log.String("table", table),
		log.Any("index_columns", columns))
	return NewIndexScan(table, reordered, columns), nil
}

// buildFirstJoin creates the initial join node and picks the strategy.
// Nested-loop wins whenever it is enabled; otherwise sort-merge probes both
// sides for an index on just this condition and upgrades to an index-backed
// merge when both sides have one.
func (b *joinTreeBuilder) buildFirstJoin(first *Condition, left, right Plan) (Plan, error) {
	switch {
	case b.cfg.EnableNestedLoopJoin:
		return NewJoinPlan(NestedLoopJoin, left, right, []*Condition{first}), nil

	case b.cfg.EnableSortMergeJoin:
		leftCols, leftFound, err := b.probeJoinIndex(first)
		if err != nil {
			return nil, err
		}
		first.SwapSides()
		rightCols, rightFound, err := b.probeJoinIndex(first)
		first.SwapSides()
		if err != nil {
			return nil, err
		}

		if leftFound && rightFound {
			// Both sides are index-ordered on the join key: read them
			// through the indexes and merge directly.
			left = NewIndexScan(first.Lhs.Table, nil, leftCols)
			right = NewIndexScan(first.Rhs.Table, nil, rightCols)
			return NewJoinPlan(SortMergeIndexJoin, left, right, []*Condition{first}), nil
		}
		return NewJoinPlan(SortMergeJoin, left, right, []*Condition{first}), nil

	default:
		return nil, errors.ConfigErrorf("no join strategy enabled").
			WithHint("Enable nested-loop or sort-merge joins in the planner configuration.")
	}
}

// probeJoinIndex checks whether the left-hand table of the condition has an
// index matching the join column.
func (b *joinTreeBuilder) probeJoinIndex(c *Condition) ([]string, bool, error) {
	tab, err := b.catalog.GetTable(c.Lhs.Table)
	if err != nil {
		return nil, false, err
	}
	columns, _, found := SelectIndex(tab, []*Condition{c})
	return columns, found, nil
}

// pushCondition descends from the root looking for the lowest join node
// whose subtree covers both tables of the condition, appends the condition
// there (normalizing operator direction when the matched children are
// reversed relative to the condition's sides) and reports MatchOwned. A
// condition is never attached twice: once a subtree reports MatchOwned the
// result propagates up unchanged.
func pushCondition(c *Condition, plan Plan) JoinSideMatch {
	switch node := plan.(type) {
	case *ScanPlan:
		return ClassifyJoinSide(c, node.Table)

	case *JoinPlan:
		left := pushCondition(c, node.Left)
		if left == MatchOwned {
			return MatchOwned
		}
		right := pushCondition(c, node.Right)
		if right == MatchOwned {
			return MatchOwned
		}
		if left == MatchNone || right == MatchNone {
			if left == MatchNone {
				return right
			}
			return left
		}
		// One child matches each side; this is the lowest covering join.
		if left == MatchRightSide {
			c.SwapSides()
		}
		node.Conditions = append(node.Conditions, c)
		return MatchOwned

	default:
		return MatchNone
	}
}
