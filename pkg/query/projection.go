// Package query provides a fluent SQL query builder with projection maps
// that translate domain field names into qualified column references.
package query

import (
	"fmt"
	"strings"
)

type projectedColumn struct {
	field  string
	column string
}

// ProjectionMap maps domain field names to table columns for a query target.
// Joined tables can contribute read-only columns through ProjectJoined.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []string
	columns []projectedColumn
	byField map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		byField: make(map[string]string),
	}
}

// Project registers a column on the primary table under the given field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, projectedColumn{field: field, column: qualified})
	p.byField[field] = qualified
	return p
}

// ProjectJoined registers a column contributed by a joined table.
func (p *ProjectionMap) ProjectJoined(alias, column, field string) *ProjectionMap {
	qualified := alias + "." + column
	p.columns = append(p.columns, projectedColumn{field: field, column: qualified})
	p.byField[field] = qualified
	return p
}

// Join appends a join clause to the FROM target.
func (p *ProjectionMap) Join(clause string) *ProjectionMap {
	p.joins = append(p.joins, clause)
	return p
}

// Table returns the FROM clause target including any registered joins.
func (p *ProjectionMap) Table() string {
	target := fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
	if len(p.joins) > 0 {
		target += " " + strings.Join(p.joins, " ")
	}
	return target
}

// Columns returns the comma-separated qualified column list for SELECT.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.columns))
	for i, c := range p.columns {
		cols[i] = c.column
	}
	return strings.Join(cols, ", ")
}

// Column returns the qualified column for a field name.
// Unknown fields return the field verbatim so misuse fails loudly in SQL.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.byField[field]; ok {
		return col
	}
	return field
}
