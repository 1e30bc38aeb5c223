package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usemap-dev/usemap/internal/cli/config"
	"github.com/usemap-dev/usemap/internal/cli/output"
	"github.com/usemap-dev/usemap/pkg/lint"
	_ "github.com/usemap-dev/usemap/pkg/lint/rules" // register validation rules
	"github.com/usemap-dev/usemap/pkg/parser"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Resolve  bool     // Resolve imports and run schema-aware rules
	BaseDir  string   // Base directory for import resolution
	Format   string   // Output format: text, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity to report: error, warning, info, hint
}

// ValidationResult is the machine-readable result for one document.
type ValidationResult struct {
	File        string            `json:"file"`
	Status      string            `json:"status"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// errValidationFailed signals a non-zero exit after diagnostics were
// already rendered.
var errValidationFailed = fmt.Errorf("validation failed")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a usecase mapping document",
		Long: `Parse a usecase mapping document and run the semantic rule catalog
against it.

Without --resolve only structural rules run. With --resolve the
document's import references are loaded from disk and schema-aware
rules check mapped fields and columns against the imported OpenAPI
and DBML definitions. Imports that cannot be resolved degrade to
warnings.

The command exits non-zero when any error-severity diagnostic is
reported.`,
		Example: `  # Structural validation
  usemap validate usecase.yaml

  # Full validation against imported schemas
  usemap validate usecase.yaml --resolve

  # Machine-readable output
  usemap validate usecase.yaml --format json

  # Disable a rule for this run
  usemap validate usecase.yaml --disable aggregate.group_by`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Resolve, "resolve", false, "Resolve imports and run schema-aware rules")
	cmd.Flags().StringVar(&opts.BaseDir, "base-dir", "", "Base directory for import resolution (default: the document's directory)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")

	return cmd
}

func runValidate(cmd *cobra.Command, file string, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	doc, err := parser.ParseFile(file)
	if err != nil {
		if r.EffectiveMode() == output.ModeJSON {
			result := ValidationResult{
				File:   file,
				Status: "error",
				Diagnostics: []lint.Diagnostic{{
					RuleID:   "parse",
					Severity: lint.SeverityError,
					Message:  err.Error(),
				}},
			}
			if jsonErr := r.JSON(result); jsonErr != nil {
				return jsonErr
			}
			return errValidationFailed
		}
		return err
	}

	lintCfg := buildLintConfig(cmdCtx.Cfg, opts)

	var diags []lint.Diagnostic
	if opts.Resolve {
		baseDir := opts.BaseDir
		if baseDir == "" {
			baseDir = cmdCtx.Cfg.BaseDir
		}
		if baseDir == "" {
			baseDir = filepath.Dir(file)
		}
		diags = lint.ValidateWithResolveConfig(doc, baseDir, lintCfg)
	} else {
		diags = lint.ValidateWithConfig(doc, lintCfg)
	}

	// Exit status reflects every diagnostic; --severity only limits
	// what is shown.
	hasErrors := lint.HasErrors(diags)
	diags = filterBySeverity(diags, opts.Severity)

	if r.EffectiveMode() == output.ModeJSON {
		status := "ok"
		if hasErrors {
			status = "error"
		}
		result := ValidationResult{File: file, Status: status, Diagnostics: diags}
		if result.Diagnostics == nil {
			result.Diagnostics = []lint.Diagnostic{}
		}
		if err := r.JSON(result); err != nil {
			return err
		}
	} else {
		renderDiagnostics(r, file, diags)
	}

	if hasErrors {
		return errValidationFailed
	}
	return nil
}

// buildLintConfig merges the project config with per-invocation flags.
// Flags take precedence.
func buildLintConfig(cfg *config.Config, opts *ValidateOptions) *lint.Config {
	lintCfg := lint.NewConfig()

	if cfg != nil && cfg.Lint != nil {
		for _, id := range cfg.Lint.Disabled {
			lintCfg.Disable(strings.TrimSpace(id))
		}
		for id, name := range cfg.Lint.Severity {
			if sev, ok := lint.ParseSeverity(name); ok {
				lintCfg.SetSeverity(id, sev)
			}
		}
	}

	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	return lintCfg
}

// filterBySeverity drops diagnostics below the threshold. Severity
// values order from error (most important) downward, so "warning"
// keeps errors and warnings.
func filterBySeverity(diags []lint.Diagnostic, threshold string) []lint.Diagnostic {
	limit, ok := lint.ParseSeverity(threshold)
	if !ok || limit == lint.SeverityHint {
		return diags
	}

	var filtered []lint.Diagnostic
	for _, d := range diags {
		if d.Severity <= limit {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func renderDiagnostics(r *output.Renderer, file string, diags []lint.Diagnostic) {
	styles := r.Styles()

	if len(diags) == 0 {
		r.Printf("%s %s\n", styles.Success.Render("OK"), file)
		return
	}

	r.Println(styles.Bold.Render(file))
	errors, warnings := 0, 0
	for _, d := range diags {
		style := severityStyle(styles, d.Severity)
		switch d.Severity {
		case lint.SeverityError:
			errors++
		case lint.SeverityWarning:
			warnings++
		}
		r.Printf("  %s %s  %s\n",
			style.Render(d.Severity.String()),
			styles.Muted.Render("["+d.RuleID+"]"),
			d.Message,
		)
	}

	r.Println("")
	r.Printf("%d errors, %d warnings\n", errors, warnings)
}
