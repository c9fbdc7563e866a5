// Package query builds parameterized SELECT statements over a projection of
// view field names onto qualified columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified columns (alias.column)
// for a base table and any joined tables. Project calls made after Join
// qualify columns with the joined alias.
type ProjectionMap struct {
	from    strings.Builder
	current string
	fields  map[string]string
	columns []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	p := &ProjectionMap{
		current: alias,
		fields:  make(map[string]string),
	}
	fmt.Fprintf(&p.from, "%s.%s %s", schema, table, alias)
	return p
}

// Project maps column of the current table to the view field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.current + "." + column
	p.fields[strings.ToLower(field)] = qualified
	p.columns = append(p.columns, qualified)
	return p
}

// Join appends a join clause; kind is the SQL keyword such as "JOIN" or "LEFT JOIN".
func (p *ProjectionMap) Join(schema, table, alias, kind, on string) *ProjectionMap {
	fmt.Fprintf(&p.from, " %s %s.%s %s ON %s", kind, schema, table, alias, on)
	p.current = alias
	return p
}

// From returns the FROM target including joins.
func (p *ProjectionMap) From() string {
	return p.from.String()
}

// Column resolves a view field to its qualified column. Field names match
// case-insensitively so query strings may use "score" for Score.
func (p *ProjectionMap) Column(field string) (string, bool) {
	col, ok := p.fields[strings.ToLower(field)]
	return col, ok
}

// Columns returns the select list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}
