// Package ast defines the document model for usecase mapping documents:
// a declarative description of how API response fields map onto relational
// columns via joins, aggregates, filters, and value transforms.
package ast

// MappingDocument is the root of a usecase mapping document.
// It is read-only input for validation; nothing in pkg/lint mutates it.
type MappingDocument struct {
	Version string  `yaml:"version"`
	Import  Import  `yaml:"import"`
	Usecase Usecase `yaml:"usecase"`
}

// Import references the external specification files the document is
// checked against. References use the fragment grammars from pkg/refs.
type Import struct {
	OpenAPI string   `yaml:"openapi,omitempty"`
	DBML    []string `yaml:"dbml,omitempty"`
}

// Usecase is a single named usecase: one response mapping plus its
// request filters and value transforms.
type Usecase struct {
	Name            string         `yaml:"name"`
	Summary         string         `yaml:"summary,omitempty"`
	Output          string         `yaml:"output,omitempty"`
	ResponseMapping []FieldMapping `yaml:"response_mapping"`
	Filters         []Filter       `yaml:"filters,omitempty"`
	Transforms      []Transform    `yaml:"transforms,omitempty"`
}

// KindArray marks a field whose value is a list of nested objects.
// Kind is an open vocabulary; unknown values are preserved verbatim.
const KindArray = "array"

// FieldMapping maps one response field to its data source. Array fields
// carry nested sub-fields, each scoped one nesting level deeper. The
// structure is a strict tree; nodes are never shared.
type FieldMapping struct {
	Field       string         `yaml:"field"`
	Source      string         `yaml:"source,omitempty"`
	Kind        string         `yaml:"type,omitempty"`
	SourceTable string         `yaml:"source_table,omitempty"`
	Join        *Join          `yaml:"join,omitempty"`
	JoinChain   []JoinStep     `yaml:"join_chain,omitempty"`
	Aggregate   *Aggregate     `yaml:"aggregate,omitempty"`
	Fields      []FieldMapping `yaml:"fields,omitempty"`
}

// IsArray reports whether the field holds a nested list.
func (m *FieldMapping) IsArray() bool {
	return m.Kind == KindArray
}

// ActualSourceTable returns the table the field's rows actually come
// from: the last step of the join chain when one is present, otherwise
// the joined table. Empty when the field declares no join.
func (m *FieldMapping) ActualSourceTable() string {
	if len(m.JoinChain) > 0 {
		return m.JoinChain[len(m.JoinChain)-1].Table
	}
	if m.Join != nil {
		return m.Join.Table
	}
	return ""
}

// Join declares that the field's data is reached by joining Table onto
// the root table. On is a free-text SQL-like condition; it is scanned
// for table.column tokens, never parsed as SQL.
type Join struct {
	Table string `yaml:"table"`
	On    string `yaml:"on"`
	Kind  string `yaml:"type,omitempty"`
	Alias string `yaml:"alias,omitempty"`
}

// JoinStep is one hop of a left-to-right multi-step join.
type JoinStep struct {
	Table string `yaml:"table"`
	On    string `yaml:"on"`
}

// Aggregate applies a grouping/reduction (COUNT, SUM, ...) to a joined
// table. GroupBy may be omitted; the root table's primary key is then
// assumed implicitly.
type Aggregate struct {
	Kind    string `yaml:"type"`
	GroupBy string `yaml:"group_by,omitempty"`
}

// Filter maps a request parameter onto the generated query
// (WHERE condition, pagination, ordering).
type Filter struct {
	Param             string   `yaml:"param"`
	MapsTo            string   `yaml:"maps_to"`
	Condition         string   `yaml:"condition,omitempty"`
	Strategy          string   `yaml:"strategy,omitempty"`
	PageSize          int      `yaml:"page_size,omitempty"`
	LimitParam        string   `yaml:"limit_param,omitempty"`
	MaxPageSize       int      `yaml:"max_page_size,omitempty"`
	CursorField       string   `yaml:"cursor_field,omitempty"`
	DefaultColumn     string   `yaml:"default_column,omitempty"`
	DefaultDirection  string   `yaml:"default_direction,omitempty"`
	AllowedColumns    []string `yaml:"allowed_columns,omitempty"`
	AllowedDirections []string `yaml:"allowed_directions,omitempty"`
}

// MapsTo values with dedicated validation rules.
const (
	MapsToOrderBy = "ORDER_BY"
)

// Transform is a value-level post-processing step (COALESCE, CONCAT,
// CASE, MASK, CONDITIONAL_SOURCE) applied to a mapped field. Kind is an
// open vocabulary.
type Transform struct {
	Target      string               `yaml:"target"`
	Kind        string               `yaml:"type"`
	Source      string               `yaml:"source,omitempty"`
	Sources     []string             `yaml:"sources,omitempty"`
	Fallback    string               `yaml:"fallback,omitempty"`
	Separator   string               `yaml:"separator,omitempty"`
	When        []CaseWhen           `yaml:"when,omitempty"`
	ElseValue   string               `yaml:"else_value,omitempty"`
	MaskPattern string               `yaml:"mask_pattern,omitempty"`
	Conditions  []TransformCondition `yaml:"condition,omitempty"`
	ThenSource  string               `yaml:"then_source,omitempty"`
	ElseSource  string               `yaml:"else_source,omitempty"`
}

// CaseWhen is one branch of a CASE transform.
type CaseWhen struct {
	Value string `yaml:"value"`
	Then  string `yaml:"then"`
}

// TransformCondition gates a conditional transform. Exactly one of
// Param (request parameter), Field (response field), or Source
// (DB column) is expected to be set.
type TransformCondition struct {
	Param    string `yaml:"param,omitempty"`
	Field    string `yaml:"field,omitempty"`
	Source   string `yaml:"source,omitempty"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
}
