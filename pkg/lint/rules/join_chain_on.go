package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(JoinChainOnCoverage)
}

// JoinChainOnCoverage applies the join.on coverage check to every step
// of a join chain. Chain steps declare no alias, so no exemption
// applies.
var JoinChainOnCoverage = lint.RuleDef{
	ID:          "join_chain.on",
	Name:        "joins.chain_on_coverage",
	Group:       "joins",
	Description: "Tables referenced in join_chain conditions must be imported via import.dbml.",
	Severity:    lint.SeverityError,
	Check:       checkJoinChainOnCoverage,
}

func checkJoinChainOnCoverage(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	imported := importedTables(doc)

	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		for _, step := range m.JoinChain {
			for _, ref := range extractTableRefs(step.On) {
				if !contains(imported, ref.Table) {
					diagnostics = append(diagnostics, lint.Diagnostic{
						RuleID:   "join_chain.on",
						Severity: lint.SeverityError,
						Message:  fmt.Sprintf("table '%s' referenced in join_chain.on is not covered by import.dbml", ref.Table),
					})
				}
			}
		}
	})
	return diagnostics
}
