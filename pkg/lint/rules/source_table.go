package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(ArraySourceTable)
}

// ArraySourceTable requires an array field's declared source_table to
// match the table its joins actually land on: the last join chain
// step, or the joined table when there is no chain.
var ArraySourceTable = lint.RuleDef{
	ID:          "source_table",
	Name:        "arrays.source_table_match",
	Group:       "arrays",
	Description: "An array field's source_table must match the table its join resolves to.",
	Severity:    lint.SeverityError,
	Check:       checkArraySourceTable,
}

func checkArraySourceTable(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		if !m.IsArray() || m.SourceTable == "" || m.Join == nil {
			return
		}
		actual := m.ActualSourceTable()
		if m.SourceTable != actual {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "source_table",
				Severity: lint.SeverityError,
				Message: fmt.Sprintf(
					"array field '%s' declares source_table '%s' but its join resolves to '%s'",
					m.Field, m.SourceTable, actual,
				),
			})
		}
	})
	return diagnostics
}
