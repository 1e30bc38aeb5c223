// Package parser loads usecase mapping documents from YAML.
package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/usemap-dev/usemap/pkg/ast"
)

// SupportedVersion is the only document version this build accepts.
const SupportedVersion = "0.1"

// ParseError reports malformed YAML in a mapping document.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// InvalidVersionError reports a document with an unsupported version.
type InvalidVersionError struct {
	Version string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version: expected %q, got %q", SupportedVersion, e.Version)
}

// Parse decodes a mapping document and checks its version. Unknown
// fields are tolerated; the rule engine only depends on the declared
// vocabulary and preserves everything else verbatim.
func Parse(input []byte) (*ast.MappingDocument, error) {
	var doc ast.MappingDocument
	if err := yaml.Unmarshal(input, &doc); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	if doc.Version != SupportedVersion {
		return nil, &InvalidVersionError{Version: doc.Version}
	}

	return &doc, nil
}

// ParseFile reads and parses a mapping document from disk.
func ParseFile(path string) (*ast.MappingDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return doc, nil
}
