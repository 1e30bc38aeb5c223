package rules

import (
	"fmt"
	"strings"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(DBMLColumns)
}

// DBMLColumns checks every `table.column` source in the mapping tree
// against the resolved DBML tables. Sources naming a table whose facts
// were not resolved are left alone; import coverage is a separate
// rule.
var DBMLColumns = lint.RuleDef{
	ID:          "dbml.columns",
	Name:        "schema.dbml_columns",
	Group:       "schema",
	Description: "Mapped source columns must exist in the imported DBML tables.",
	Severity:    lint.SeverityError,
	SchemaAware: true,
	Check:       checkDBMLColumns,
}

func checkDBMLColumns(doc *ast.MappingDocument, schema *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		if m.Source == "" {
			return
		}
		table, column, ok := strings.Cut(m.Source, ".")
		if !ok || !isIdentifier(column) {
			return
		}
		facts := schema.Table(table)
		if facts == nil {
			return
		}
		if !facts.HasColumn(column) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "dbml.columns",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("source '%s' names column '%s' which table '%s' does not declare", m.Source, column, table),
			})
		}
	})
	return diagnostics
}
