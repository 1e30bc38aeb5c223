package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(AggregateGroupBy)
}

// AggregateGroupBy recommends an explicit group_by on aggregated
// fields. An omitted group_by falls back to the root table's primary
// key, which is valid but easy to misread.
var AggregateGroupBy = lint.RuleDef{
	ID:          "aggregate.group_by",
	Name:        "aggregates.explicit_group_by",
	Group:       "aggregates",
	Description: "Aggregated fields should declare group_by explicitly.",
	Severity:    lint.SeverityWarning,
	Check:       checkAggregateGroupBy,
}

func checkAggregateGroupBy(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		if m.Aggregate == nil || m.Aggregate.GroupBy != "" {
			return
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "aggregate.group_by",
			Severity: lint.SeverityWarning,
			Message: fmt.Sprintf(
				"field '%s' uses aggregate (%s) without group_by; the root table's primary key is applied implicitly",
				m.Field, m.Aggregate.Kind,
			),
		})
	})
	return diagnostics
}
