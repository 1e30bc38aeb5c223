package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(JoinOnCoverage)
}

// JoinOnCoverage requires every table referenced in a join condition
// to be covered by an import.dbml reference.
var JoinOnCoverage = lint.RuleDef{
	ID:          "join.on",
	Name:        "joins.on_coverage",
	Group:       "joins",
	Description: "Tables referenced in join.on conditions must be imported via import.dbml.",
	Severity:    lint.SeverityError,
	Check:       checkJoinOnCoverage,
	BadExample: `join:
  table: users
  on: posts.user_id = users.id   # posts not imported`,
	GoodExample: `import:
  dbml:
    - ./schema.dbml#tables["posts"]
    - ./schema.dbml#tables["users"]`,
}

func checkJoinOnCoverage(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	imported := importedTables(doc)

	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		if m.Join == nil {
			return
		}
		for _, ref := range extractTableRefs(m.Join.On) {
			// The join's own alias is a local name, not a table.
			if m.Join.Alias != "" && ref.Table == m.Join.Alias {
				continue
			}
			if !contains(imported, ref.Table) {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "join.on",
					Severity: lint.SeverityError,
					Message:  fmt.Sprintf("table '%s' referenced in join.on is not covered by import.dbml", ref.Table),
				})
			}
		}
	})
	return diagnostics
}
