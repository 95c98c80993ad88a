// stratadb-plan loads a JSON fixture holding table definitions and a
// resolved query descriptor, plans the query and prints the plan tree.
// It exists for debugging planner behavior without a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/dshills/StrataDB/internal/catalog"
	"github.com/dshills/StrataDB/internal/config"
	"github.com/dshills/StrataDB/internal/log"
	"github.com/dshills/StrataDB/internal/sql/ast"
	"github.com/dshills/StrataDB/internal/sql/planner"
	"github.com/dshills/StrataDB/internal/sql/types"
)

var (
	version = "0.1.0"
)

type fixture struct {
	Tables []fixtureTable `json:"tables"`
	Query  fixtureQuery   `json:"query"`
}

type fixtureTable struct {
	Name    string          `json:"name"`
	Columns []fixtureColumn `json:"columns"`
	Indexes []fixtureIndex  `json:"indexes"`
}

type fixtureColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type fixtureIndex struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

type fixtureQuery struct {
	Statement     string             `json:"statement"`
	Table         string             `json:"table"`
	Tables        []string           `json:"tables"`
	Conditions    []fixtureCondition `json:"conditions"`
	Columns       []fixtureColumnRef `json:"columns"`
	GroupColumns  []fixtureColumnRef `json:"group_columns"`
	HasAggregates bool               `json:"has_aggregates"`
	OrderBy       *fixtureOrderBy    `json:"order_by"`
}

type fixtureCondition struct {
	LhsTable  string      `json:"lhs_table"`
	LhsColumn string      `json:"lhs_column"`
	Op        string      `json:"op"`
	RhsTable  string      `json:"rhs_table"`
	RhsColumn string      `json:"rhs_column"`
	Value     interface{} `json:"value"`
}

type fixtureColumnRef struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

type fixtureOrderBy struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

func main() {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		fixtureFile = flag.String("fixture", "", "Path to plan fixture file (required)")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("stratadb-plan v%s\n", version)
		os.Exit(0)
	}
	if *fixtureFile == "" {
		fmt.Fprintln(os.Stderr, "missing required -fixture flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config file: %v\n", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Format: "text"})

	if err := run(cfg, *fixtureFile); err != nil {
		fmt.Fprintf(os.Stderr, "stratadb-plan: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, fixturePath string) error {
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}

	cat, err := buildCatalog(fx.Tables)
	if err != nil {
		return err
	}

	query, err := buildQuery(fx.Query)
	if err != nil {
		return err
	}

	p := planner.NewBasicPlanner(cat, cfg.Planner)
	plan, err := p.Plan(query)
	if err != nil {
		return err
	}

	fmt.Print(planner.ExplainPlan(plan))
	return nil
}

func buildCatalog(tables []fixtureTable) (catalog.Catalog, error) {
	cat := catalog.NewMemoryCatalog()
	for _, t := range tables {
		schema := &catalog.TableSchema{TableName: t.Name}
		for _, c := range t.Columns {
			dt, err := types.ParseTypeName(c.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			schema.Columns = append(schema.Columns, catalog.ColumnDef{
				Name:     c.Name,
				DataType: dt,
				Nullable: true,
			})
		}
		if _, err := cat.CreateTable(schema); err != nil {
			return nil, err
		}
		for _, idx := range t.Indexes {
			_, err := cat.CreateIndex(&catalog.IndexSchema{
				TableName: t.Name,
				IndexName: idx.Name,
				Columns:   idx.Columns,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

func buildQuery(fq fixtureQuery) (*planner.Query, error) {
	q := &planner.Query{
		Tables:        fq.Tables,
		HasAggregates: fq.HasAggregates,
	}

	switch fq.Statement {
	case "select":
		stmt := &ast.SelectStmt{}
		if fq.OrderBy != nil {
			stmt.OrderBy = &ast.OrderBy{Column: fq.OrderBy.Column, Descending: fq.OrderBy.Descending}
		}
		q.Stmt = stmt
	case "delete":
		q.Stmt = &ast.DeleteStmt{TableName: fq.Table}
	default:
		return nil, fmt.Errorf("unsupported fixture statement: %q", fq.Statement)
	}

	for _, fc := range fq.Conditions {
		cond, err := buildCondition(fc)
		if err != nil {
			return nil, err
		}
		q.Conditions = append(q.Conditions, cond)
	}
	for _, c := range fq.Columns {
		q.Columns = append(q.Columns, planner.ColumnRef{Table: c.Table, Column: c.Column})
	}
	for _, c := range fq.GroupColumns {
		q.GroupColumns = append(q.GroupColumns, planner.ColumnRef{Table: c.Table, Column: c.Column})
	}

	return q, nil
}

func buildCondition(fc fixtureCondition) (*planner.Condition, error) {
	op, err := parseOp(fc.Op)
	if err != nil {
		return nil, err
	}

	cond := &planner.Condition{
		Lhs: planner.ColumnRef{Table: fc.LhsTable, Column: fc.LhsColumn},
		Op:  op,
	}
	if fc.RhsColumn != "" {
		cond.Rhs = planner.ColumnRef{Table: fc.RhsTable, Column: fc.RhsColumn}
		return cond, nil
	}

	cond.RhsIsValue = true
	cond.Value = decodeValue(fc.Value)
	return cond, nil
}

func parseOp(op string) (planner.CompOp, error) {
	switch op {
	case "=", "==":
		return planner.OpEqual, nil
	case "<>", "!=":
		return planner.OpNotEqual, nil
	case "<":
		return planner.OpLess, nil
	case ">":
		return planner.OpGreater, nil
	case "<=":
		return planner.OpLessEqual, nil
	case ">=":
		return planner.OpGreaterEqual, nil
	default:
		return 0, fmt.Errorf("unknown comparison operator: %q", op)
	}
}

func decodeValue(raw interface{}) types.Value {
	if raw == nil {
		return types.NewNullValue()
	}
	// JSON numbers arrive as float64; keep integral values as integers.
	if f, ok := raw.(float64); ok && f == math.Trunc(f) {
		return types.NewValue(int64(f))
	}
	return types.NewValue(raw)
}
