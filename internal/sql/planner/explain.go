package planner

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dshills/StrataDB/internal/sql/types"
)

// ExplainPlan renders a plan tree as an indented multi-line string, one
// node per line, children indented two spaces below their parent.
func ExplainPlan(plan Plan) string {
	var b strings.Builder
	explainNode(&b, plan, 0)
	return b.String()
}

func explainNode(b *strings.Builder, plan Plan, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(plan.String())
	b.WriteString("\n")
	for _, child := range plan.Children() {
		explainNode(b, child, depth+1)
	}
}

// QuoteValue renders a literal for display in EXPLAIN output using
// PostgreSQL quoting rules.
func QuoteValue(v types.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	if s, ok := v.Data.(string); ok {
		return pq.QuoteLiteral(s)
	}
	return fmt.Sprintf("%v", v.Data)
}

// QuoteName renders a table or column identifier for display, quoting it
// only when required.
func QuoteName(name string) string {
	if name == strings.ToLower(name) && !strings.ContainsAny(name, " \"") {
		return name
	}
	return pq.QuoteIdentifier(name)
}
