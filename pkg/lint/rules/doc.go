// Package rules provides the semantic rule implementations for usecase
// mapping documents.
//
// Rules are organized by the part of the document they check:
//   - imports: import coverage of referenced tables (import.dbml)
//   - joins: join conditions and aliasing (join.on, join_chain.on, join.alias)
//   - aggregates: grouping declarations (aggregate.group_by)
//   - arrays: array source tables (source_table)
//   - filters: parameter declarations and ordering (filters.condition,
//     filters.allowed_columns)
//   - transforms: transform targets and condition parameters
//     (transforms.target, transforms.condition.param)
//   - schema: checks against resolved import facts (openapi.fields,
//     dbml.columns)
//
// To register all rules with the global lint registry, import this
// package with a blank identifier:
//
//	import _ "github.com/usemap-dev/usemap/pkg/lint/rules"
package rules
