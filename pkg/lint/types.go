// Package lint validates usecase mapping documents against a set of
// registered semantic rules. Rules are data-driven RuleDefs registered
// from init() functions in the rules package; the validator runs the
// catalog in rule-ID order so a given document always yields the same
// diagnostic sequence.
package lint

import (
	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

// Diagnostic represents one validation finding.
type Diagnostic struct {
	RuleID   string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CheckFunc analyzes a document and returns diagnostics. The schema
// parameter carries resolved import facts and is nil when validation
// runs without resolution; schema-aware rules are skipped in that
// case, so a non-nil schema may be assumed by them. The opts parameter
// carries rule-specific options from configuration.
type CheckFunc func(doc *ast.MappingDocument, schema *resolver.ResolvedSchema, opts map[string]any) []Diagnostic

// RuleDef is a data-driven rule definition. Rules are stateless; all
// context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // Unique dotted identifier, e.g. "join.alias"
	Name        string    // Human-readable name
	Group       string    // Category, e.g. "imports", "joins", "filters"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	SchemaAware bool      // Requires resolved import facts to run
	Check       CheckFunc // The check function

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Document fragment showing the anti-pattern
	GoodExample string // Document fragment showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	SchemaAware     bool     `json:"schema_aware"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a RuleDef for documentation/tooling.
func GetRuleInfo(def RuleDef) RuleInfo {
	return RuleInfo{
		ID:              def.ID,
		Name:            def.Name,
		Group:           def.Group,
		Description:     def.Description,
		DefaultSeverity: def.Severity,
		SchemaAware:     def.SchemaAware,
		Rationale:       def.Rationale,
		BadExample:      def.BadExample,
		GoodExample:     def.GoodExample,
		Fix:             def.Fix,
	}
}
