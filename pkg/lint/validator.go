package lint

import (
	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/resolver"
)

// RuleIDResolve is the rule ID attached to import resolution failures.
// It has no RuleDef; resolution runs before the catalog does.
const RuleIDResolve = "import.resolve"

// Validate runs the structural rule catalog against a document.
// Schema-aware rules are skipped because no import facts are loaded.
func Validate(doc *ast.MappingDocument) []Diagnostic {
	return ValidateWithFacts(doc, nil, nil)
}

// ValidateWithConfig is Validate with rule configuration applied.
func ValidateWithConfig(doc *ast.MappingDocument, cfg *Config) []Diagnostic {
	return ValidateWithFacts(doc, nil, cfg)
}

// ValidateWithResolve resolves the document's imports relative to
// baseDir, then runs the full catalog including schema-aware rules.
// Each import that fails to resolve yields one warning diagnostic;
// rules that depend on the missing facts degrade rather than fire.
func ValidateWithResolve(doc *ast.MappingDocument, baseDir string) []Diagnostic {
	return ValidateWithResolveConfig(doc, baseDir, nil)
}

// ValidateWithResolveConfig is ValidateWithResolve with rule
// configuration applied.
func ValidateWithResolveConfig(doc *ast.MappingDocument, baseDir string, cfg *Config) []Diagnostic {
	schema, errs := resolver.New(baseDir).Resolve(doc.Import)

	diags := make([]Diagnostic, 0, len(errs))
	for _, err := range errs {
		diags = append(diags, Diagnostic{
			RuleID:   RuleIDResolve,
			Severity: cfg.GetSeverity(RuleIDResolve, SeverityWarning),
			Message:  err.Error(),
		})
	}

	return append(diags, ValidateWithFacts(doc, schema, cfg)...)
}

// ValidateWithFacts runs the rule catalog against a document with the
// given resolved facts. A nil schema skips schema-aware rules. Rules
// run in catalog (ID) order; within a rule, diagnostics keep the order
// the rule emitted them in, which follows document order.
func ValidateWithFacts(doc *ast.MappingDocument, schema *resolver.ResolvedSchema, cfg *Config) []Diagnostic {
	var diags []Diagnostic
	for _, rule := range Catalog() {
		if cfg.IsDisabled(rule.ID) {
			continue
		}
		if rule.SchemaAware && schema == nil {
			continue
		}
		for _, d := range rule.Check(doc, schema, cfg.Options(rule.ID)) {
			d.Severity = cfg.GetSeverity(d.RuleID, d.Severity)
			diags = append(diags, d)
		}
	}
	return diags
}

// HasErrors reports whether any diagnostic carries error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
