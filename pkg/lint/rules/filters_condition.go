package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(FilterConditionParams)
}

// FilterConditionParams requires every :param placeholder used in a
// filter condition to be declared by some filter's param field.
var FilterConditionParams = lint.RuleDef{
	ID:          "filters.condition",
	Name:        "filters.declared_params",
	Group:       "filters",
	Description: "Every :param used in a filter condition must be declared as a filter param.",
	Severity:    lint.SeverityError,
	Check:       checkFilterConditionParams,
	BadExample: `filters:
  - param: status
    maps_to: WHERE
    condition: users.status = :status AND users.role = :role`,
	Fix: "Declare the missing parameter as its own filter entry, or remove it from the condition.",
}

func checkFilterConditionParams(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var declared []string
	for _, f := range doc.Usecase.Filters {
		declared = append(declared, f.Param)
	}

	var diagnostics []lint.Diagnostic
	for _, f := range doc.Usecase.Filters {
		if f.Condition == "" {
			continue
		}
		for _, param := range scanParams(f.Condition) {
			if !contains(declared, param) {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "filters.condition",
					Severity: lint.SeverityError,
					Message:  fmt.Sprintf("parameter ':%s' used in condition is not declared by any filters[].param", param),
				})
			}
		}
	}
	return diagnostics
}
