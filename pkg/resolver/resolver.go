// Package resolver loads the external schema facts a mapping document
// imports: table/column lists from DBML files and field/parameter lists
// from OpenAPI documents. Resolution failures are collected, never
// fatal; validation degrades to structural checks for whatever could
// not be loaded.
package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/refs"
)

// IOError reports a file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading file %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DBMLParseError reports malformed DBML content.
type DBMLParseError struct {
	Source string
	Detail string
}

func (e *DBMLParseError) Error() string {
	return fmt.Sprintf("parsing DBML %q: %s", e.Source, e.Detail)
}

// OpenAPIParseError reports malformed OpenAPI content.
type OpenAPIParseError struct {
	Source string
	Detail string
}

func (e *OpenAPIParseError) Error() string {
	return fmt.Sprintf("parsing OpenAPI %q: %s", e.Source, e.Detail)
}

// NotFoundError reports a reference whose target does not exist in an
// otherwise well-formed file.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reference target not found: %s", e.What)
}

// Table holds the column facts extracted for one DBML table.
type Table struct {
	Name    string
	Columns []string
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// OperationFacts holds what one OpenAPI operation response exposes:
// the top-level response field names and the operation's parameter
// names.
type OperationFacts struct {
	Fields     []string
	Parameters []string
}

// HasField reports whether the response declares the named top-level
// field.
func (o *OperationFacts) HasField(name string) bool {
	for _, f := range o.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// HasParameter reports whether the operation declares the named
// parameter.
func (o *OperationFacts) HasParameter(name string) bool {
	for _, p := range o.Parameters {
		if p == name {
			return true
		}
	}
	return false
}

// ResolvedSchema is the union of all facts a document's imports
// yielded. OpenAPI is nil when the document imports no OpenAPI
// reference or its resolution failed.
type ResolvedSchema struct {
	OpenAPI *OperationFacts
	Tables  []Table
}

// Table returns the facts for the named table, or nil when the name
// was not resolved.
func (s *ResolvedSchema) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// Resolver resolves import references relative to a base directory.
// Each DBML file is read and parsed at most once per Resolver.
type Resolver struct {
	baseDir string
	dbml    map[string][]Table
}

// New returns a Resolver that joins relative reference paths onto
// baseDir. An empty baseDir resolves against the working directory.
func New(baseDir string) *Resolver {
	return &Resolver{
		baseDir: baseDir,
		dbml:    make(map[string][]Table),
	}
}

// Resolve loads every resolvable fact from the import block. It
// returns the facts it could gather plus one error per reference that
// failed; references that do not match a grammar are skipped silently.
func (r *Resolver) Resolve(imp ast.Import) (*ResolvedSchema, []error) {
	schema := &ResolvedSchema{}
	var errs []error

	if imp.OpenAPI != "" {
		if ref, ok := refs.ParseOpenAPIRef(imp.OpenAPI); ok {
			facts, err := ResolveOpenAPI(r.resolvePath(ref.File), ref.Path, ref.Method, ref.Status)
			if err != nil {
				errs = append(errs, err)
			} else {
				schema.OpenAPI = facts
			}
		}
	}

	for _, raw := range imp.DBML {
		ref, ok := refs.ParseDBMLRef(raw)
		if !ok {
			continue
		}
		tables, err := r.dbmlTables(r.resolvePath(ref.File))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		found := false
		for _, t := range tables {
			if t.Name == ref.Table {
				if schema.Table(t.Name) == nil {
					schema.Tables = append(schema.Tables, t)
				}
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, &NotFoundError{
				What: fmt.Sprintf("table %q in %s", ref.Table, ref.File),
			})
		}
	}

	return schema, errs
}

func (r *Resolver) dbmlTables(path string) ([]Table, error) {
	if tables, ok := r.dbml[path]; ok {
		return tables, nil
	}
	tables, err := ResolveDBML(path)
	if err != nil {
		return nil, err
	}
	r.dbml[path] = tables
	return tables, nil
}

func (r *Resolver) resolvePath(p string) string {
	if r.baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir, p)
}
