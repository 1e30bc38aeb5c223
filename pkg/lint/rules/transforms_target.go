package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(TransformTarget)
}

// TransformTarget requires every transform to target a field declared
// somewhere in the response mapping. Nested array fields are valid
// targets, so matching runs against the flattened field name list.
var TransformTarget = lint.RuleDef{
	ID:          "transforms.target",
	Name:        "transforms.known_target",
	Group:       "transforms",
	Description: "A transform's target must name a field of the response mapping.",
	Severity:    lint.SeverityError,
	Check:       checkTransformTarget,
}

func checkTransformTarget(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	names := ast.FieldNames(doc.Usecase.ResponseMapping)

	var diagnostics []lint.Diagnostic
	for _, tr := range doc.Usecase.Transforms {
		if !contains(names, tr.Target) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "transforms.target",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("transform target '%s' does not match any field in the response mapping", tr.Target),
			})
		}
	}
	return diagnostics
}
