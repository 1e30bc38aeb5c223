package ast

// Walk visits every field mapping in depth-first pre-order, descending
// into array sub-fields. The visit order is the document order, which
// keeps diagnostic emission deterministic.
func Walk(mappings []FieldMapping, visit func(*FieldMapping)) {
	for i := range mappings {
		m := &mappings[i]
		visit(m)
		if len(m.Fields) > 0 {
			Walk(m.Fields, visit)
		}
	}
}

// FieldNames returns every field name in the mapping tree, flattened
// across all nesting depths, in document order.
func FieldNames(mappings []FieldMapping) []string {
	var names []string
	Walk(mappings, func(m *FieldMapping) {
		names = append(names, m.Field)
	})
	return names
}
