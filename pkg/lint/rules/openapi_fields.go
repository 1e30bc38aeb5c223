package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(OpenAPIFields)
}

// OpenAPIFields checks the top-level response mapping fields against
// the resolved OpenAPI response schema. Nested fields describe the
// element shape of arrays and have no top-level counterpart, so only
// the first mapping level is checked.
var OpenAPIFields = lint.RuleDef{
	ID:          "openapi.fields",
	Name:        "schema.openapi_fields",
	Group:       "schema",
	Description: "Top-level mapped fields must exist in the imported OpenAPI response schema.",
	Severity:    lint.SeverityError,
	SchemaAware: true,
	Check:       checkOpenAPIFields,
}

func checkOpenAPIFields(doc *ast.MappingDocument, schema *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	if schema.OpenAPI == nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, m := range doc.Usecase.ResponseMapping {
		if !schema.OpenAPI.HasField(m.Field) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "openapi.fields",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("field '%s' is not declared by the imported OpenAPI response schema", m.Field),
			})
		}
	}
	return diagnostics
}
