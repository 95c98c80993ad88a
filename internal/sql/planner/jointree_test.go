package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/StrataDB/internal/catalog"
	"github.com/dshills/StrataDB/internal/config"
	"github.com/dshills/StrataDB/internal/errors"
)

func threeTables(t *testing.T) *catalog.MemoryCatalog {
	t.Helper()
	cat := catalog.NewMemoryCatalog()
	mustCreateTable(t, cat, "a", intCol("id"), intCol("x"), intCol("z"), strCol("name"))
	mustCreateTable(t, cat, "b", intCol("aid"), intCol("x"), intCol("y"), intCol("z"))
	mustCreateTable(t, cat, "c", intCol("y"), intCol("z"))
	return cat
}

func buildTree(t *testing.T, cat *catalog.MemoryCatalog, cfg config.PlannerConfig, tables []string, conds []*Condition) Plan {
	t.Helper()
	builder := newTestBuilder(cat, cfg)
	q := &Query{Tables: tables}
	tree, err := builder.build(q, NewConditionPool(conds))
	require.NoError(t, err)
	return tree
}

func TestJoinTreeSingleTable(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{valCond("a", "x", OpEqual, int64(1))}
	tree := buildTree(t, cat, bothStrategies(), []string{"a"}, conds)

	scan, ok := tree.(*ScanPlan)
	require.True(t, ok, "single table needs no join")
	assert.Equal(t, SeqScan, scan.Mode)
	assert.Equal(t, "a", scan.Table)
	assert.Len(t, scan.Conditions, 1)
}

func TestJoinTreeTwoTables(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{joinCond("a", "id", OpEqual, "b", "aid")}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b"}, conds)

	join, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Equal(t, NestedLoopJoin, join.Strategy)
	require.Len(t, join.Conditions, 1)
	assert.Equal(t, "a.id = b.aid", join.Conditions[0].String())

	left, ok := join.Left.(*ScanPlan)
	require.True(t, ok)
	assert.Equal(t, "a", left.Table)
	right, ok := join.Right.(*ScanPlan)
	require.True(t, ok)
	assert.Equal(t, "b", right.Table)
}

func TestJoinTreeFirstJoinOrientationSwap(t *testing.T) {
	cat := threeTables(t)

	// Condition written backwards relative to FROM order: the builder swaps
	// sides and inverts the operator so the first FROM table stays left.
	conds := []*Condition{joinCond("b", "x", OpLess, "a", "z")}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b"}, conds)

	join, ok := tree.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, join.Conditions, 1)
	assert.Equal(t, "a.z > b.x", join.Conditions[0].String())
	assert.Equal(t, "a", join.Left.(*ScanPlan).Table)
	assert.Equal(t, "b", join.Right.(*ScanPlan).Table)
}

func TestJoinTreeChain(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{
		joinCond("a", "x", OpEqual, "b", "x"),
		joinCond("b", "y", OpEqual, "c", "y"),
	}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b", "c"}, conds)

	root, ok := tree.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, root.Conditions, 1)
	assert.Equal(t, "c.y = b.y", root.Conditions[0].String(),
		"fresh leaf becomes the left side of the comparison")
	assert.Equal(t, "c", root.Left.(*ScanPlan).Table)

	inner, ok := root.Right.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, inner.Conditions, 1)
	assert.Equal(t, "a.x = b.x", inner.Conditions[0].String())

	assert.ElementsMatch(t, []string{"a", "b", "c"}, leafTables(tree))
}

func TestJoinTreeCrossProduct(t *testing.T) {
	cat := threeTables(t)

	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b"}, nil)

	join, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Equal(t, NestedLoopJoin, join.Strategy)
	assert.Empty(t, join.Conditions)
	assert.ElementsMatch(t, []string{"a", "b"}, leafTables(tree))
}

func TestJoinTreeSweepsUnconnectedTables(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{joinCond("a", "x", OpEqual, "b", "x")}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b", "c"}, conds)

	root, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Empty(t, root.Conditions, "untouched table is cross-joined in")
	assert.Equal(t, "c", root.Left.(*ScanPlan).Table)

	inner, ok := root.Right.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, inner.Conditions, 1)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, leafTables(tree))
}

func TestJoinTreePushdownLandsOnLowestJoin(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{
		joinCond("a", "x", OpEqual, "b", "x"),
		joinCond("b", "y", OpEqual, "c", "y"),
		joinCond("a", "z", OpEqual, "b", "z"),
	}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b", "c"}, conds)

	root, ok := tree.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, root.Conditions, 1, "root keeps only the attach condition")

	inner, ok := root.Right.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, inner.Conditions, 2, "pushed condition lands on the join covering a and b")
	assert.Equal(t, "a.x = b.x", inner.Conditions[0].String())
	assert.Equal(t, "a.z = b.z", inner.Conditions[1].String())
}

func TestJoinTreePushdownNormalizesOperator(t *testing.T) {
	cat := threeTables(t)

	conds := []*Condition{
		joinCond("a", "x", OpEqual, "b", "x"),
		joinCond("b", "y", OpEqual, "c", "y"),
		joinCond("b", "z", OpLess, "a", "z"),
	}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b", "c"}, conds)

	inner, ok := tree.(*JoinPlan).Right.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, inner.Conditions, 2)
	assert.Equal(t, "a.z > b.z", inner.Conditions[1].String(),
		"sides swapped and operator inverted to match child order")
}

func TestJoinTreeDisjointPairsCrossMerged(t *testing.T) {
	cat := threeTables(t)
	mustCreateTable(t, cat, "d", intCol("y"))

	conds := []*Condition{
		joinCond("a", "x", OpEqual, "b", "x"),
		joinCond("c", "y", OpEqual, "d", "y"),
	}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b", "c", "d"}, conds)

	root, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Empty(t, root.Conditions, "disjoint pair merges through a cross join")

	pair, ok := root.Left.(*JoinPlan)
	require.True(t, ok)
	require.Len(t, pair.Conditions, 1)
	assert.Equal(t, "c.y = d.y", pair.Conditions[0].String())

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, leafTables(tree))
}

func TestJoinTreeNoStrategyEnabled(t *testing.T) {
	cat := threeTables(t)

	builder := newTestBuilder(cat, config.PlannerConfig{})
	q := &Query{Tables: []string{"a", "b"}}
	pool := NewConditionPool([]*Condition{joinCond("a", "x", OpEqual, "b", "x")})

	_, err := builder.build(q, pool)
	require.Error(t, err)
	assert.True(t, errors.IsError(err, errors.ConfigFileError))
}

func TestJoinTreeSortMergeWithIndex(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	mustCreateTable(t, cat, "a", intCol("id"), intCol("v"))
	mustCreateTable(t, cat, "b", intCol("aid"))
	mustCreateIndex(t, cat, "a", "id")
	mustCreateIndex(t, cat, "b", "aid")

	cfg := config.PlannerConfig{EnableSortMergeJoin: true}
	conds := []*Condition{
		valCond("a", "v", OpEqual, int64(1)),
		joinCond("a", "id", OpEqual, "b", "aid"),
	}
	tree := buildTree(t, cat, cfg, []string{"a", "b"}, conds)

	join, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Equal(t, SortMergeIndexJoin, join.Strategy)

	left, ok := join.Left.(*ScanPlan)
	require.True(t, ok)
	assert.Equal(t, IndexScan, left.Mode)
	assert.Equal(t, []string{"id"}, left.IndexColumns)
	assert.Empty(t, left.Conditions, "merge-side scans carry no residual filters")

	right, ok := join.Right.(*ScanPlan)
	require.True(t, ok)
	assert.Equal(t, IndexScan, right.Mode)
	assert.Equal(t, []string{"aid"}, right.IndexColumns)
}

func TestJoinTreeSortMergeWithoutIndexes(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	mustCreateTable(t, cat, "a", intCol("id"))
	mustCreateTable(t, cat, "b", intCol("aid"))
	mustCreateIndex(t, cat, "a", "id") // only one side indexed

	cfg := config.PlannerConfig{EnableSortMergeJoin: true}
	conds := []*Condition{joinCond("a", "id", OpEqual, "b", "aid")}
	tree := buildTree(t, cat, cfg, []string{"a", "b"}, conds)

	join, ok := tree.(*JoinPlan)
	require.True(t, ok)
	assert.Equal(t, SortMergeJoin, join.Strategy)
	assert.Equal(t, SeqScan, join.Right.(*ScanPlan).Mode)
}

func TestJoinTreeNestedLoopWinsWhenBothEnabled(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	mustCreateTable(t, cat, "a", intCol("id"))
	mustCreateTable(t, cat, "b", intCol("aid"))
	mustCreateIndex(t, cat, "a", "id")
	mustCreateIndex(t, cat, "b", "aid")

	conds := []*Condition{joinCond("a", "id", OpEqual, "b", "aid")}
	tree := buildTree(t, cat, bothStrategies(), []string{"a", "b"}, conds)

	assert.Equal(t, NestedLoopJoin, tree.(*JoinPlan).Strategy)
}

func TestJoinTreeLeafIndexSelection(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	mustCreateTable(t, cat, "employees", intCol("id"), intCol("dept_id"), strCol("name"))
	mustCreateTable(t, cat, "depts", intCol("id"))
	mustCreateIndex(t, cat, "employees", "dept_id", "name")

	conds := []*Condition{
		valCond("employees", "dept_id", OpEqual, int64(5)),
		joinCond("employees", "id", OpEqual, "depts", "id"),
	}
	tree := buildTree(t, cat, bothStrategies(), []string{"employees", "depts"}, conds)

	join := tree.(*JoinPlan)
	left := join.Left.(*ScanPlan)
	assert.Equal(t, IndexScan, left.Mode)
	assert.Equal(t, []string{"dept_id", "name"}, left.IndexColumns)
	require.Len(t, left.Conditions, 1)
	assert.Equal(t, "employees.dept_id = 5", left.Conditions[0].String())
}
