package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/usemap-dev/usemap/internal/cli/output"
	"github.com/usemap-dev/usemap/pkg/ast"
	"github.com/usemap-dev/usemap/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Format string // Output format: text, json
}

// ParseResult is the machine-readable summary of a parsed document.
type ParseResult struct {
	File       string   `json:"file"`
	Version    string   `json:"version"`
	Usecase    string   `json:"usecase"`
	OpenAPI    string   `json:"openapi,omitempty"`
	DBML       []string `json:"dbml,omitempty"`
	Fields     []string `json:"fields"`
	Filters    int      `json:"filters"`
	Transforms int      `json:"transforms"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a mapping document and show its structure",
		Long: `Parse a usecase mapping document and print its structure: the
imports it declares and the field-to-source mapping tree, including
joins and aggregates. No validation rules run; use validate for that.`,
		Example: `  # Show the mapping tree
  usemap parse usecase.yaml

  # Machine-readable summary
  usemap parse usecase.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runParse(cmd *cobra.Command, file string, opts *ParseOptions) error {
	r := commandRenderer(cmd, opts.Format)

	doc, err := parser.ParseFile(file)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		result := ParseResult{
			File:       file,
			Version:    doc.Version,
			Usecase:    doc.Usecase.Name,
			OpenAPI:    doc.Import.OpenAPI,
			DBML:       doc.Import.DBML,
			Fields:     ast.FieldNames(doc.Usecase.ResponseMapping),
			Filters:    len(doc.Usecase.Filters),
			Transforms: len(doc.Usecase.Transforms),
		}
		if result.Fields == nil {
			result.Fields = []string{}
		}
		return r.JSON(result)
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(doc.Usecase.Name))
	if doc.Usecase.Summary != "" {
		r.Println(styles.Muted.Render(doc.Usecase.Summary))
	}
	r.Println("")

	if doc.Import.OpenAPI != "" {
		r.Printf("%s %s\n", styles.Bold.Render("OpenAPI:"), doc.Import.OpenAPI)
	}
	for _, ref := range doc.Import.DBML {
		r.Printf("%s %s\n", styles.Bold.Render("DBML:   "), ref)
	}
	r.Println("")

	renderMappingTable(r, doc.Usecase.ResponseMapping)

	if len(doc.Usecase.Filters) > 0 || len(doc.Usecase.Transforms) > 0 {
		r.Println("")
		r.Printf("%d filters, %d transforms\n", len(doc.Usecase.Filters), len(doc.Usecase.Transforms))
	}

	return nil
}

func renderMappingTable(r *output.Renderer, mappings []ast.FieldMapping) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Source", "Type", "Join"})

	appendMappingRows(t, mappings, 0)
	t.Render()
}

func appendMappingRows(t table.Writer, mappings []ast.FieldMapping, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, m := range mappings {
		kind := m.Kind
		if kind == "" {
			kind = "-"
		}
		t.AppendRow(table.Row{indent + m.Field, m.Source, kind, describeJoin(&m)})
		if len(m.Fields) > 0 {
			appendMappingRows(t, m.Fields, depth+1)
		}
	}
}

func describeJoin(m *ast.FieldMapping) string {
	if m.Join == nil {
		return ""
	}
	parts := []string{m.Join.Table}
	for _, step := range m.JoinChain {
		parts = append(parts, step.Table)
	}
	desc := strings.Join(parts, " > ")
	if m.Aggregate != nil {
		desc += " (" + m.Aggregate.Kind + ")"
	}
	return desc
}
