package resolver

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ResolveDBML reads a DBML file and extracts its table facts.
func ResolveDBML(filePath string) ([]Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &IOError{Path: filePath, Err: err}
	}
	return ExtractTables(string(data), filePath)
}

// ExtractTables parses DBML content and collects one Table per declared
// Table block, with the column names declared in each. Non-table
// constructs (Project, Enum, Ref, TableGroup) are recognized and
// skipped; a top-level line that is not a DBML construct, a malformed
// table header, or an unterminated block yields a DBMLParseError.
func ExtractTables(content, source string) ([]Table, error) {
	var tables []Table
	var current *Table
	depth := 0     // brace depth inside the current Table block
	skipDepth := 0 // brace depth inside a skipped non-table block

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if skipDepth > 0 {
			skipDepth += opens - closes
			continue
		}

		if current == nil {
			if strings.HasPrefix(line, "Table ") {
				name, ok := tableHeader(line)
				if !ok {
					return nil, &DBMLParseError{
						Source: source,
						Detail: fmt.Sprintf("line %d: malformed Table header: %s", lineNo, line),
					}
				}
				current = &Table{Name: name}
				depth = 1
				continue
			}
			if topLevelConstruct(line) {
				skipDepth = opens - closes
				continue
			}
			return nil, &DBMLParseError{
				Source: source,
				Detail: fmt.Sprintf("line %d: not a DBML construct: %s", lineNo, line),
			}
		}

		// Inside a table block. Nested blocks such as `indexes {`
		// contribute nothing to the column list.
		if depth == 1 && closes == 0 && opens == 0 {
			if col, ok := columnName(line); ok && !current.HasColumn(col) {
				current.Columns = append(current.Columns, col)
			}
			continue
		}

		depth += opens - closes
		if depth <= 0 {
			tables = append(tables, *current)
			current = nil
			depth = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &DBMLParseError{Source: source, Detail: err.Error()}
	}
	if current != nil {
		return nil, &DBMLParseError{
			Source: source,
			Detail: "unterminated Table block: " + current.Name,
		}
	}
	if skipDepth > 0 {
		return nil, &DBMLParseError{Source: source, Detail: "unterminated block"}
	}

	return tables, nil
}

// topLevelConstruct reports whether the line opens a DBML construct
// other than Table. Matching is by leading keyword so the construct
// bodies can be skipped by brace depth.
func topLevelConstruct(line string) bool {
	for _, kw := range []string{"Project", "Enum", "enum", "TableGroup", "Ref"} {
		rest, ok := strings.CutPrefix(line, kw)
		if !ok {
			continue
		}
		if rest == "" || strings.HasPrefix(rest, " ") ||
			strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "{") {
			return true
		}
	}
	return false
}

// tableHeader matches `Table <name> {`, where the name may be quoted
// (quoted names may contain spaces) and may carry an `as Alias` clause.
// The alias is dropped; references name tables by their declared name.
func tableHeader(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "Table ")
	if !ok {
		return "", false
	}
	rest, ok = strings.CutSuffix(strings.TrimSpace(rest), "{")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)

	var name string
	if quoted, found := strings.CutPrefix(rest, `"`); found {
		name, rest, found = strings.Cut(quoted, `"`)
		if !found {
			return "", false
		}
	} else {
		name, rest, _ = strings.Cut(rest, " ")
	}
	if name == "" {
		return "", false
	}

	// Whatever follows the name must be an alias clause or nothing.
	rest = strings.TrimSpace(rest)
	if rest != "" {
		alias, ok := strings.CutPrefix(rest, "as ")
		if !ok {
			return "", false
		}
		if strings.Trim(strings.TrimSpace(alias), `"`) == "" {
			return "", false
		}
	}
	return name, true
}

// columnName extracts the column from a `<name> <type> [settings]`
// line. Lines without a type token (such as `Note: '...'`) are not
// columns.
func columnName(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	name := strings.Trim(fields[0], `"`)
	if name == "" || strings.HasSuffix(name, ":") || !isIdentifier(name) {
		return "", false
	}
	return name, true
}

func isIdentifier(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
