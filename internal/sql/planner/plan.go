package planner

import (
	"fmt"
	"strings"

	"github.com/dshills/StrataDB/internal/sql/ast"
	"github.com/dshills/StrataDB/internal/sql/types"
)

// Plan represents a node in a query execution plan. The node set is closed:
// the execution engine instantiates one executor per node kind and a type
// switch over plans must handle every variant.
type Plan interface {
	// Children returns the child plans.
	Children() []Plan
	// String returns a one-line description for plan rendering.
	String() string

	planNode()
}

// ScanMode selects how a scan reads its table.
type ScanMode int

const (
	SeqScan ScanMode = iota
	IndexScan
)

func (m ScanMode) String() string {
	if m == IndexScan {
		return "IndexScan"
	}
	return "SeqScan"
}

// JoinStrategy selects the physical join algorithm.
type JoinStrategy int

const (
	NestedLoopJoin JoinStrategy = iota
	SortMergeJoin
	SortMergeIndexJoin
)

func (s JoinStrategy) String() string {
	switch s {
	case NestedLoopJoin:
		return "NestedLoop"
	case SortMergeJoin:
		return "SortMerge"
	case SortMergeIndexJoin:
		return "SortMergeWithIndex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// DMLKind tags a DML plan node.
type DMLKind int

const (
	InsertDML DMLKind = iota
	DeleteDML
	UpdateDML
	SelectDML
)

func (k DMLKind) String() string {
	switch k {
	case InsertDML:
		return "Insert"
	case DeleteDML:
		return "Delete"
	case UpdateDML:
		return "Update"
	case SelectDML:
		return "Select"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// DDLKind tags a DDL plan node.
type DDLKind int

const (
	CreateTableDDL DDLKind = iota
	DropTableDDL
	CreateIndexDDL
	DropIndexDDL
	ShowIndexDDL
)

func (k DDLKind) String() string {
	switch k {
	case CreateTableDDL:
		return "CreateTable"
	case DropTableDDL:
		return "DropTable"
	case CreateIndexDDL:
		return "CreateIndex"
	case DropIndexDDL:
		return "DropIndex"
	case ShowIndexDDL:
		return "ShowIndex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ScanPlan is a leaf reading one base table. Conditions are residual
// filters applied to scanned rows; for an index scan, IndexColumns holds
// the chosen index's columns and the leading conditions drive the access
// path in that order.
type ScanPlan struct {
	Mode         ScanMode
	Table        string
	Conditions   []*Condition
	IndexColumns []string
}

func (s *ScanPlan) planNode()        {}
func (s *ScanPlan) Children() []Plan { return nil }

func (s *ScanPlan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s", s.Mode, QuoteName(s.Table))
	if len(s.IndexColumns) > 0 {
		fmt.Fprintf(&b, ", index=(%s)", strings.Join(s.IndexColumns, ", "))
	}
	if len(s.Conditions) > 0 {
		fmt.Fprintf(&b, ", filter=%s", conditionList(s.Conditions))
	}
	b.WriteString(")")
	return b.String()
}

// JoinPlan combines exactly two children. Its condition list may grow while
// the tree is under construction: predicate pushdown appends to the lowest
// join covering both referenced tables.
type JoinPlan struct {
	Strategy   JoinStrategy
	Left       Plan
	Right      Plan
	Conditions []*Condition
}

func (j *JoinPlan) planNode()        {}
func (j *JoinPlan) Children() []Plan { return []Plan{j.Left, j.Right} }

func (j *JoinPlan) String() string {
	return fmt.Sprintf("%sJoin(%s)", j.Strategy, conditionList(j.Conditions))
}

// SortPlan orders its child's output on a single column.
type SortPlan struct {
	Child      Plan
	Column     ColumnRef
	Descending bool
}

func (s *SortPlan) planNode()        {}
func (s *SortPlan) Children() []Plan { return []Plan{s.Child} }

func (s *SortPlan) String() string {
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("Sort(%s %s)", s.Column, dir)
}

// AggregationPlan groups and aggregates its child's output.
type AggregationPlan struct {
	Child        Plan
	Columns      []ColumnRef
	GroupColumns []ColumnRef
	Having       []*Condition
}

func (a *AggregationPlan) planNode()        {}
func (a *AggregationPlan) Children() []Plan { return []Plan{a.Child} }

func (a *AggregationPlan) String() string {
	var parts []string
	if len(a.GroupColumns) > 0 {
		parts = append(parts, "group by "+columnList(a.GroupColumns))
	}
	if len(a.Having) > 0 {
		parts = append(parts, "having "+conditionList(a.Having))
	}
	return fmt.Sprintf("Aggregation(%s)", strings.Join(parts, ", "))
}

// ProjectionPlan restricts its child's output to the requested columns.
type ProjectionPlan struct {
	Child   Plan
	Columns []ColumnRef
}

func (p *ProjectionPlan) planNode()        {}
func (p *ProjectionPlan) Children() []Plan { return []Plan{p.Child} }

func (p *ProjectionPlan) String() string {
	return fmt.Sprintf("Projection(%s)", columnList(p.Columns))
}

// DMLPlan is the statement-level wrapper the execution engine dispatches
// on. Insert has no child; Delete and Update carry their target scan;
// Select carries the full relational plan. Conditions stays empty when a
// child scan owns the predicates: every condition lives on exactly one node.
type DMLPlan struct {
	Kind       DMLKind
	Child      Plan
	Table      string
	Values     []types.Value
	Conditions []*Condition
	SetClauses []ast.SetClause
}

func (d *DMLPlan) planNode() {}

func (d *DMLPlan) Children() []Plan {
	if d.Child == nil {
		return nil
	}
	return []Plan{d.Child}
}

func (d *DMLPlan) String() string {
	if d.Table == "" {
		return fmt.Sprintf("DML(%s)", d.Kind)
	}
	return fmt.Sprintf("DML(%s, %s)", d.Kind, d.Table)
}

// DDLPlan carries a schema-change statement. It has no child plan.
type DDLPlan struct {
	Kind       DDLKind
	Table      string
	Columns    []string
	ColumnDefs []ast.ColumnDef
}

func (d *DDLPlan) planNode()        {}
func (d *DDLPlan) Children() []Plan { return nil }

func (d *DDLPlan) String() string {
	if len(d.Columns) > 0 {
		return fmt.Sprintf("DDL(%s, %s(%s))", d.Kind, d.Table, strings.Join(d.Columns, ", "))
	}
	return fmt.Sprintf("DDL(%s, %s)", d.Kind, d.Table)
}

// NewSeqScan creates a sequential scan leaf.
func NewSeqScan(table string, conds []*Condition) *ScanPlan {
	return &ScanPlan{Mode: SeqScan, Table: table, Conditions: conds}
}

// NewIndexScan creates an index scan leaf over the given index columns.
func NewIndexScan(table string, conds []*Condition, indexColumns []string) *ScanPlan {
	return &ScanPlan{Mode: IndexScan, Table: table, Conditions: conds, IndexColumns: indexColumns}
}

// NewJoinPlan creates a binary join node.
func NewJoinPlan(strategy JoinStrategy, left, right Plan, conds []*Condition) *JoinPlan {
	return &JoinPlan{Strategy: strategy, Left: left, Right: right, Conditions: conds}
}

// NewSortPlan creates a sort node over child.
func NewSortPlan(child Plan, column ColumnRef, descending bool) *SortPlan {
	return &SortPlan{Child: child, Column: column, Descending: descending}
}

// NewAggregationPlan creates an aggregation node over child.
func NewAggregationPlan(child Plan, columns, groupColumns []ColumnRef, having []*Condition) *AggregationPlan {
	return &AggregationPlan{Child: child, Columns: columns, GroupColumns: groupColumns, Having: having}
}

// NewProjectionPlan creates a projection node over child.
func NewProjectionPlan(child Plan, columns []ColumnRef) *ProjectionPlan {
	return &ProjectionPlan{Child: child, Columns: columns}
}

func conditionList(conds []*Condition) string {
	strs := make([]string, len(conds))
	for i, c := range conds {
		strs[i] = c.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

func columnList(cols []ColumnRef) string {
	strs := make([]string, len(cols))
	for i, c := range cols {
		strs[i] = c.String()
	}
	return strings.Join(strs, ", ")
}
