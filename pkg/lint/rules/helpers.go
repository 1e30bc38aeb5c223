package rules

import (
	"strings"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/refs"
)

// importedTables lists the table names the document's import.dbml
// block covers, in declaration order. Unparseable references
// contribute nothing.
func importedTables(doc *ast.MappingDocument) []string {
	var tables []string
	for _, raw := range doc.Import.DBML {
		if ref, ok := refs.ParseDBMLRef(raw); ok {
			tables = append(tables, ref.Table)
		}
	}
	return tables
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// tableRef is one table.column occurrence found in a condition string.
type tableRef struct {
	Table  string
	Column string
}

// extractTableRefs scans a free-text join condition for table.column
// tokens. The condition is split on whitespace, each token is trimmed
// of surrounding punctuation, and a token counts as a reference only
// when it has exactly one dot with a non-empty table side and an
// identifier column side. Operators, literals, and function calls fall
// out naturally.
func extractTableRefs(expr string) []tableRef {
	var found []tableRef
	for _, token := range strings.Fields(expr) {
		clean := strings.TrimFunc(token, func(r rune) bool {
			return !isWordRune(r) && r != '.'
		})
		table, col, ok := strings.Cut(clean, ".")
		if !ok || table == "" || col == "" {
			continue
		}
		if strings.Contains(col, ".") || !isIdentifier(col) {
			continue
		}
		found = append(found, tableRef{Table: table, Column: col})
	}
	return found
}

// scanParams lists the :param placeholders used in a filter condition,
// in occurrence order. The leading colon is stripped and trailing
// punctuation trimmed, so `:status)` yields "status".
func scanParams(condition string) []string {
	var params []string
	for _, token := range strings.Fields(condition) {
		name, ok := strings.CutPrefix(token, ":")
		if !ok {
			continue
		}
		name = strings.TrimRightFunc(name, func(r rune) bool { return !isWordRune(r) })
		if name != "" {
			params = append(params, name)
		}
	}
	return params
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
	case r >= 'A' && r <= 'Z':
	case r >= '0' && r <= '9':
	case r == '_':
	default:
		return false
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}
