package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/usemap-dev/usemap/internal/cli/output"
	"github.com/usemap-dev/usemap/pkg/lint"
	_ "github.com/usemap-dev/usemap/pkg/lint/rules" // register validation rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available validation rules",
		Long: `List all available validation rules with their documentation.

Rules are organized by the part of the document they check (imports,
joins, filters, transforms, schema). Use --verbose to see full
documentation including examples and fix guidance.`,
		Example: `  # List all rules
  usemap rules

  # Show details for a specific rule
  usemap rules join.alias

  # List rules in the filters group
  usemap rules --group filters

  # Output as JSON
  usemap rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func commandRenderer(cmd *cobra.Command, format string) *output.Renderer {
	r := NewCommandContext(cmd).Renderer
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return r
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := commandRenderer(cmd, opts.Format)

	var rules []lint.RuleInfo
	for _, def := range lint.Catalog() {
		if opts.Group != "" && def.Group != opts.Group {
			continue
		}
		rules = append(rules, lint.GetRuleInfo(def))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{"rules": rules, "count": len(rules)})
	}
	return listRulesText(r, rules, opts.Verbose)
}

func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Validation Rules (%d)", len(rules))))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Bold.Render("  " + capitalizeFirst(currentGroup)))
		}

		sevStyle := severityStyle(styles, rule.DefaultSeverity)
		r.Printf("    %s  %s - %s\n",
			styles.Muted.Render(rule.ID),
			rule.Name,
			sevStyle.Render(rule.DefaultSeverity.String()),
		)

		if verbose {
			r.Println(styles.Muted.Render("        " + rule.Description))
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("        Why: " + rule.Rationale))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'usemap rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := commandRenderer(cmd, opts.Format)

	def, ok := lint.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	rule := lint.GetRuleInfo(def)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rule)
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(rule.ID + " - " + rule.Name))
	r.Println("")
	r.Printf("%s %s\n", styles.Bold.Render("Group:"), rule.Group)
	r.Printf("%s %s\n", styles.Bold.Render("Severity:"), rule.DefaultSeverity.String())
	if rule.SchemaAware {
		r.Printf("%s requires --resolve\n", styles.Bold.Render("Schema:"))
	}
	r.Println("")
	r.Println(rule.Description)

	if rule.Rationale != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Why"))
		r.Println(rule.Rationale)
	}
	if rule.BadExample != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Bad"))
		r.Println(rule.BadExample)
	}
	if rule.GoodExample != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Good"))
		r.Println(rule.GoodExample)
	}
	if rule.Fix != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Fix"))
		r.Println(rule.Fix)
	}
	r.Println("")

	return nil
}

func severityStyle(styles output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	default:
		return styles.Info
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
