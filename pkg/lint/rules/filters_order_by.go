package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(OrderByDefaultColumn)
}

// OrderByDefaultColumn requires the default_column of an ORDER_BY
// filter to be a member of its allowed_columns list. Filters without
// an allowed_columns list or without a default are out of scope.
var OrderByDefaultColumn = lint.RuleDef{
	ID:          "filters.allowed_columns",
	Name:        "filters.order_by_default",
	Group:       "filters",
	Description: "An ORDER_BY filter's default_column must be inside its allowed_columns list.",
	Severity:    lint.SeverityError,
	Check:       checkOrderByDefaultColumn,
}

func checkOrderByDefaultColumn(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, f := range doc.Usecase.Filters {
		if f.MapsTo != ast.MapsToOrderBy {
			continue
		}
		if f.AllowedColumns == nil || f.DefaultColumn == "" {
			continue
		}
		if !contains(f.AllowedColumns, f.DefaultColumn) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "filters.allowed_columns",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("ORDER_BY default_column '%s' is outside the allowed_columns list", f.DefaultColumn),
			})
		}
	}
	return diagnostics
}
