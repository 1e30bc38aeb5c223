package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(TransformConditionParam)
}

// TransformConditionParam checks request parameters used in transform
// conditions against the imported OpenAPI operation. Without resolved
// OpenAPI facts the existence check cannot run, so each occurrence
// degrades to a warning saying the check was skipped.
var TransformConditionParam = lint.RuleDef{
	ID:          "transforms.condition.param",
	Name:        "transforms.condition_param",
	Group:       "transforms",
	Description: "Parameters used in transform conditions must exist on the imported OpenAPI operation.",
	Severity:    lint.SeverityError,
	Check:       checkTransformConditionParam,
}

func checkTransformConditionParam(doc *ast.MappingDocument, schema *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, tr := range doc.Usecase.Transforms {
		for _, cond := range tr.Conditions {
			if cond.Param == "" {
				continue
			}
			if schema == nil || schema.OpenAPI == nil {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "transforms.condition.param",
					Severity: lint.SeverityWarning,
					Message: fmt.Sprintf(
						"transform '%s' conditions on param '%s' but no OpenAPI facts are available, existence check skipped",
						tr.Target, cond.Param,
					),
				})
				continue
			}
			if !schema.OpenAPI.HasParameter(cond.Param) {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "transforms.condition.param",
					Severity: lint.SeverityError,
					Message: fmt.Sprintf(
						"transform '%s' conditions on param '%s' which the imported OpenAPI operation does not declare",
						tr.Target, cond.Param,
					),
				})
			}
		}
	}
	return diagnostics
}
