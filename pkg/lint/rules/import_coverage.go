package rules

import (
	"fmt"
	"strings"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(ImportCoverage)
}

// ImportCoverage requires every table used by the response mapping to
// be covered by an import.dbml reference.
var ImportCoverage = lint.RuleDef{
	ID:          "import.dbml",
	Name:        "imports.coverage",
	Group:       "imports",
	Description: "Every table used in the response mapping must be imported via import.dbml.",
	Severity:    lint.SeverityError,
	Check:       checkImportCoverage,
	Rationale: "A table that is mapped but not imported cannot be checked against its schema, " +
		"and usually signals a reference that was renamed or forgotten.",
	Fix: "Add a `<file>#tables[\"<name>\"]` entry to import.dbml for the missing table.",
}

func checkImportCoverage(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	imported := importedTables(doc)

	var diagnostics []lint.Diagnostic
	for _, table := range usedTables(doc.Usecase.ResponseMapping) {
		if !contains(imported, table) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "import.dbml",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("table '%s' is not covered by import.dbml", table),
			})
		}
	}
	return diagnostics
}

// usedTables collects every table the mapping tree touches: source
// prefixes, joined tables, and join chain steps. The result is
// deduplicated in first-occurrence order.
func usedTables(mappings []ast.FieldMapping) []string {
	var tables []string
	add := func(t string) {
		if t != "" && !contains(tables, t) {
			tables = append(tables, t)
		}
	}

	ast.Walk(mappings, func(m *ast.FieldMapping) {
		if m.Source != "" {
			// A source with no dot is treated as a bare table name.
			table, _, _ := strings.Cut(m.Source, ".")
			add(table)
		}
		if m.Join != nil {
			add(m.Join.Table)
		}
		for _, step := range m.JoinChain {
			add(step.Table)
		}
	})
	return tables
}
