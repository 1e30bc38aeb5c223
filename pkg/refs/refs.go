// Package refs parses the two reference micro-grammars used by mapping
// document imports:
//
//	<path>#tables["<name>"]
//	<path>#paths["<api-path>"].<method>.responses["<status>"]
//
// Parsing is pure and total. Inputs that do not match a grammar yield
// ok == false; callers treat that as "skip resolution", not as an error.
package refs

import "strings"

// DBMLRef points at one table inside a DBML file.
type DBMLRef struct {
	File  string
	Table string
}

// OpenAPIRef points at one response of one operation inside an OpenAPI
// document.
type OpenAPIRef struct {
	File   string
	Path   string
	Method string
	Status string
}

// ParseDBMLRef parses `<path>#tables["<name>"]`. The path may be any
// string without '#'. Embedded '"' in the table name has no escaping
// defined by the grammar.
func ParseDBMLRef(ref string) (DBMLRef, bool) {
	path, fragment, found := strings.Cut(ref, "#")
	if !found {
		return DBMLRef{}, false
	}
	name, found := strings.CutPrefix(fragment, `tables["`)
	if !found {
		return DBMLRef{}, false
	}
	name, found = strings.CutSuffix(name, `"]`)
	if !found {
		return DBMLRef{}, false
	}
	return DBMLRef{File: path, Table: name}, true
}

// ParseOpenAPIRef parses
// `<path>#paths["<api-path>"].<method>.responses["<status>"]`.
//
// The api-path may itself contain '/', '{', '}', and literal dots, so
// only the first `"].` after `paths["` and the first `.responses["`
// after the method act as delimiters.
func ParseOpenAPIRef(ref string) (OpenAPIRef, bool) {
	path, fragment, found := strings.Cut(ref, "#")
	if !found {
		return OpenAPIRef{}, false
	}
	rest, found := strings.CutPrefix(fragment, `paths["`)
	if !found {
		return OpenAPIRef{}, false
	}
	apiPath, rest, found := strings.Cut(rest, `"].`)
	if !found {
		return OpenAPIRef{}, false
	}
	method, rest, found := strings.Cut(rest, `.responses["`)
	if !found {
		return OpenAPIRef{}, false
	}
	status, found := strings.CutSuffix(rest, `"]`)
	if !found {
		return OpenAPIRef{}, false
	}
	return OpenAPIRef{File: path, Path: apiPath, Method: method, Status: status}, true
}
