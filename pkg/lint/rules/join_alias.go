package rules

import (
	"fmt"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/lint"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

func init() {
	lint.Register(JoinAlias)
}

// JoinAlias requires an alias when the same table is joined more than
// once with different conditions anywhere in the mapping tree.
var JoinAlias = lint.RuleDef{
	ID:          "join.alias",
	Name:        "joins.alias_required",
	Group:       "joins",
	Description: "Joining one table under multiple conditions requires an alias to disambiguate.",
	Severity:    lint.SeverityError,
	Check:       checkJoinAlias,
	Rationale: "Two unaliased joins of the same table produce one ambiguous table reference " +
		"in the generated query; each occurrence needs its own name.",
	BadExample: `- field: author_name
  join: {table: users, on: posts.user_id = users.id}
- field: editor_name
  join: {table: users, on: posts.editor_id = users.id}`,
	GoodExample: `- field: editor_name
  join: {table: users, on: posts.editor_id = editors.id, alias: editors}`,
	Fix: "Add an `alias:` to at least one of the conflicting joins.",
}

func checkJoinAlias(doc *ast.MappingDocument, _ *resolver.ResolvedSchema, _ map[string]any) []lint.Diagnostic {
	type firstJoin struct {
		on    string
		alias string
	}
	// One registry for the whole tree: nested array joins share the
	// namespace of the query they end up in.
	seen := make(map[string]firstJoin)

	var diagnostics []lint.Diagnostic
	ast.Walk(doc.Usecase.ResponseMapping, func(m *ast.FieldMapping) {
		if m.Join == nil {
			return
		}
		existing, ok := seen[m.Join.Table]
		if !ok {
			seen[m.Join.Table] = firstJoin{on: m.Join.On, alias: m.Join.Alias}
			return
		}
		if existing.on != m.Join.On && m.Join.Alias == "" && existing.alias == "" {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "join.alias",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("table '%s' is joined multiple times with different conditions but no alias is given", m.Join.Table),
			})
		}
	})
	return diagnostics
}
