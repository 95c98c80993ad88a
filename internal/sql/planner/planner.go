// Package planner transforms resolved query descriptors into executable
// plan trees: compositions of scan, join, sort, aggregation, projection,
// DML and DDL nodes consumed top-down by the execution engine.
package planner

import (
	"github.com/google/uuid"

	"github.com/dshills/StrataDB/internal/catalog"
	"github.com/dshills/StrataDB/internal/config"
	"github.com/dshills/StrataDB/internal/errors"
	"github.com/dshills/StrataDB/internal/log"
	"github.com/dshills/StrataDB/internal/sql/ast"
)

// Planner transforms query descriptors into executable query plans.
type Planner interface {
	Plan(q *Query) (Plan, error)
}

// BasicPlanner is a rule-based query planner. Planning is synchronous and
// side-effect free: it reads one catalog snapshot per call and either
// returns a complete tree or an error, never a partial plan.
type BasicPlanner struct {
	catalog catalog.Catalog
	cfg     config.PlannerConfig
	logger  log.Logger
}

// NewBasicPlanner creates a planner over the given catalog with the given
// configuration.
func NewBasicPlanner(cat catalog.Catalog, cfg config.PlannerConfig) *BasicPlanner {
	return &BasicPlanner{
		catalog: cat,
		cfg:     cfg,
		logger:  log.Default(),
	}
}

// WithLogger replaces the planner's logger.
func (p *BasicPlanner) WithLogger(logger log.Logger) *BasicPlanner {
	p.logger = logger
	return p
}

// Plan dispatches on the statement kind and builds the plan tree. The query
// descriptor is not mutated; planning the same descriptor again yields a
// structurally identical tree.
func (p *BasicPlanner) Plan(q *Query) (Plan, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	logger := p.logger.With(log.String("statement_id", uuid.NewString()))
	snap := p.catalog.Snapshot()

	switch s := q.Stmt.(type) {
	case *ast.CreateTableStmt:
		return &DDLPlan{Kind: CreateTableDDL, Table: s.TableName, ColumnDefs: s.Columns}, nil
	case *ast.DropTableStmt:
		return &DDLPlan{Kind: DropTableDDL, Table: s.TableName}, nil
	case *ast.CreateIndexStmt:
		return &DDLPlan{Kind: CreateIndexDDL, Table: s.TableName, Columns: s.Columns}, nil
	case *ast.DropIndexStmt:
		return &DDLPlan{Kind: DropIndexDDL, Table: s.TableName, Columns: s.Columns}, nil
	case *ast.ShowIndexStmt:
		return &DDLPlan{Kind: ShowIndexDDL, Table: s.TableName}, nil

	case *ast.InsertStmt:
		return &DMLPlan{Kind: InsertDML, Table: s.TableName, Values: q.Values}, nil

	case *ast.DeleteStmt:
		scan, err := p.buildTargetScan(snap, s.TableName, q)
		if err != nil {
			return nil, err
		}
		return &DMLPlan{Kind: DeleteDML, Child: scan, Table: s.TableName}, nil

	case *ast.UpdateStmt:
		scan, err := p.buildTargetScan(snap, s.TableName, q)
		if err != nil {
			return nil, err
		}
		return &DMLPlan{
			Kind:       UpdateDML,
			Child:      scan,
			Table:      s.TableName,
			SetClauses: q.SetClauses,
		}, nil

	case *ast.SelectStmt:
		return p.planSelect(snap, q, s, logger)

	default:
		return nil, errors.InternalErrorf("unexpected statement type %T", q.Stmt)
	}
}

// buildTargetScan builds the single scan feeding a DELETE or UPDATE,
// using an index on the target table when one matches.
func (p *BasicPlanner) buildTargetScan(snap catalog.Reader, table string, q *Query) (*ScanPlan, error) {
	tab, err := snap.GetTable(table)
	if err != nil {
		return nil, err
	}

	conds := cloneConditions(q.Conditions)
	columns, reordered, found := SelectIndex(tab, conds)
	if !found {
		return NewSeqScan(table, conds), nil
	}
	return NewIndexScan(table, reordered, columns), nil
}

// planSelect builds a SELECT plan: join tree, then aggregation, ordering
// and projection wrappers, then the statement-level DML node.
func (p *BasicPlanner) planSelect(snap catalog.Reader, q *Query, stmt *ast.SelectStmt, logger log.Logger) (Plan, error) {
	q = p.logicalOptimize(q)

	builder := &joinTreeBuilder{catalog: snap, cfg: p.cfg, logger: logger}
	pool := NewConditionPool(cloneConditions(q.Conditions))
	tree, err := builder.build(q, pool)
	if err != nil {
		return nil, err
	}

	if q.HasAggregates || len(q.GroupColumns) > 0 {
		tree = NewAggregationPlan(tree, q.Columns, q.GroupColumns, cloneConditions(q.Having))
	}

	if stmt.OrderBy != nil {
		column, err := p.resolveOrderColumn(snap, q.Tables, stmt.OrderBy.Column)
		if err != nil {
			return nil, err
		}
		tree = NewSortPlan(tree, column, stmt.OrderBy.Descending)
	}

	tree = NewProjectionPlan(tree, q.Columns)

	logger.Debug("select planned",
		log.Int("tables", len(q.Tables)),
		log.Int("conditions", len(q.Conditions)))

	return &DMLPlan{Kind: SelectDML, Child: tree}, nil
}

// logicalOptimize is the logical-rewrite pass. It currently returns the
// query unchanged; rule-based rewrites (predicate simplification, view
// inlining) slot in here without touching the join-tree builder.
func (p *BasicPlanner) logicalOptimize(q *Query) *Query {
	return q
}

// resolveOrderColumn resolves an ORDER BY column name against the combined
// column list of the query's tables. When several tables declare the
// column, the last one in FROM order wins.
func (p *BasicPlanner) resolveOrderColumn(snap catalog.Reader, tables []string, column string) (ColumnRef, error) {
	var resolved ColumnRef
	found := false
	for _, table := range tables {
		tab, err := snap.GetTable(table)
		if err != nil {
			return ColumnRef{}, err
		}
		if tab.HasColumn(column) {
			resolved = ColumnRef{Table: table, Column: column}
			found = true
		}
	}
	if !found {
		return ColumnRef{}, errors.UndefinedColumnError(column, "")
	}
	return resolved, nil
}
