package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/StrataDB/internal/catalog"
	"github.com/dshills/StrataDB/internal/config"
	"github.com/dshills/StrataDB/internal/log"
	"github.com/dshills/StrataDB/internal/sql/types"
)

// valCond builds a column-to-literal condition.
func valCond(table, column string, op CompOp, value interface{}) *Condition {
	return &Condition{
		Lhs:        ColumnRef{Table: table, Column: column},
		Op:         op,
		RhsIsValue: true,
		Value:      types.NewValue(value),
	}
}

// joinCond builds a column-to-column condition.
func joinCond(lt, lc string, op CompOp, rt, rc string) *Condition {
	return &Condition{
		Lhs: ColumnRef{Table: lt, Column: lc},
		Op:  op,
		Rhs: ColumnRef{Table: rt, Column: rc},
	}
}

func intCol(name string) catalog.ColumnDef {
	return catalog.ColumnDef{Name: name, DataType: types.Integer, Nullable: true}
}

func strCol(name string) catalog.ColumnDef {
	return catalog.ColumnDef{Name: name, DataType: types.Varchar, Nullable: true}
}

func mustCreateTable(t *testing.T, cat *catalog.MemoryCatalog, name string, cols ...catalog.ColumnDef) {
	t.Helper()
	_, err := cat.CreateTable(&catalog.TableSchema{TableName: name, Columns: cols})
	require.NoError(t, err)
}

func mustCreateIndex(t *testing.T, cat *catalog.MemoryCatalog, table string, cols ...string) {
	t.Helper()
	_, err := cat.CreateIndex(&catalog.IndexSchema{TableName: table, Columns: cols})
	require.NoError(t, err)
}

func bothStrategies() config.PlannerConfig {
	return config.PlannerConfig{EnableNestedLoopJoin: true, EnableSortMergeJoin: true}
}

func newTestBuilder(cat *catalog.MemoryCatalog, cfg config.PlannerConfig) *joinTreeBuilder {
	return &joinTreeBuilder{catalog: cat.Snapshot(), cfg: cfg, logger: log.Discard()}
}

// treeConditions collects every condition attached anywhere in the tree.
func treeConditions(plan Plan) []*Condition {
	var out []*Condition
	switch node := plan.(type) {
	case *ScanPlan:
		out = append(out, node.Conditions...)
	case *JoinPlan:
		out = append(out, node.Conditions...)
	}
	for _, child := range plan.Children() {
		out = append(out, treeConditions(child)...)
	}
	return out
}

// leafTables collects the scanned table of every leaf in the tree.
func leafTables(plan Plan) []string {
	if scan, ok := plan.(*ScanPlan); ok {
		return []string{scan.Table}
	}
	var out []string
	for _, child := range plan.Children() {
		out = append(out, leafTables(child)...)
	}
	return out
}
