package planner

import (
	"github.com/dshills/StrataDB/internal/catalog"
)

// SelectIndex picks the best composite index on a table for a condition set
// using the leftmost-prefix rule: walking an index's columns left to right,
// an equality condition on the column extends the match and continues, a
// non-equality condition extends the match by one and stops (rows past an
// inequality bound are unordered on later columns), any other column stops.
//
// The index with the longest match wins; ties keep the index declared first
// in the catalog, so selection is deterministic. On a match the conditions
// covering the matched columns are moved to the front of the returned list
// in index-column order, with the rest following in their original order.
//
// Returns found=false (with a nil column list and the conditions unchanged)
// when no index matches any leading column; callers fall back to a
// sequential scan with all conditions as residual filters.
func SelectIndex(table *catalog.Table, conds []*Condition) (columns []string, reordered []*Condition, found bool) {
	if table == nil || len(table.Indexes) == 0 {
		return nil, conds, false
	}

	// Split conditions by operator class, keyed on the left-hand column.
	// A later condition on the same column shadows an earlier one for
	// matching purposes; the earlier one stays in the residual list.
	eqPos := make(map[string]int)
	neqPos := make(map[string]int)
	for i, c := range conds {
		if c.Op == OpEqual {
			eqPos[c.Lhs.Column] = i
		} else {
			neqPos[c.Lhs.Column] = i
		}
	}

	best := -1
	bestLen := 0
	for i, index := range table.Indexes {
		length := 0
		for _, col := range index.Columns {
			if _, ok := eqPos[col]; ok {
				length++
				continue
			}
			if _, ok := neqPos[col]; ok {
				length++
			}
			break
		}
		if length > bestLen {
			bestLen = length
			best = i
		}
	}

	if best == -1 {
		return nil, conds, false
	}

	index := table.Indexes[best]

	// Reorder: matched conditions first, in index-column order.
	matched := make([]int, 0, bestLen)
	matchedSet := make(map[int]bool, bestLen)
	for _, col := range index.Columns[:bestLen] {
		pos, ok := eqPos[col]
		if !ok {
			pos, ok = neqPos[col]
		}
		if ok && !matchedSet[pos] {
			matched = append(matched, pos)
			matchedSet[pos] = true
		}
	}

	reordered = make([]*Condition, 0, len(conds))
	for _, pos := range matched {
		reordered = append(reordered, conds[pos])
	}
	for i, c := range conds {
		if !matchedSet[i] {
			reordered = append(reordered, c)
		}
	}

	columns = append([]string(nil), index.Columns...)
	return columns, reordered, true
}
