package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Builder accumulates WHERE conditions and ordering against a projection.
// Placeholders are numbered as conditions are added.
type Builder struct {
	projection *ProjectionMap
	where      []string
	args       []any
	sort       []SortField
	fallback   []SortField
}

// NewBuilder creates a Builder. defaultSort applies when no valid sort is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		fallback:   defaultSort,
	}
}

func (b *Builder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// WhereEquals matches field = value. Nil values, including typed nil pointers, are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || isNil(value) {
		return b
	}
	b.where = append(b.where, col+" = "+b.bind(value))
	return b
}

// WhereContains matches field case-insensitively against a substring.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	col, ok := b.projection.Column(field)
	if !ok || value == nil || *value == "" {
		return b
	}
	b.where = append(b.where, col+" ILIKE "+b.bind("%"+*value+"%"))
	return b
}

// WhereSearch matches a substring against any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" {
		return b
	}

	var terms []string
	for _, field := range fields {
		if col, ok := b.projection.Column(field); ok {
			terms = append(terms, col+" ILIKE "+b.bind("%"+*search+"%"))
		}
	}
	if len(terms) > 0 {
		b.where = append(b.where, "("+strings.Join(terms, " OR ")+")")
	}
	return b
}

// OrderByFields replaces the default sort. Fields outside the projection are dropped.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// Build returns the full SELECT.
func (b *Builder) Build() (string, []any) {
	return b.selectSQL() + b.orderBy(), b.args
}

// BuildCount returns SELECT COUNT(*) under the same conditions.
func (b *Builder) BuildCount() (string, []any) {
	return "SELECT COUNT(*) FROM " + b.projection.From() + b.whereSQL(), b.args
}

// BuildPage returns the ordered SELECT for a 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	offset := max(page-1, 0) * pageSize
	return fmt.Sprintf("%s%s LIMIT %d OFFSET %d", b.selectSQL(), b.orderBy(), pageSize, offset), b.args
}

// BuildSingle selects the row whose idField equals id, ignoring other conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	col, ok := b.projection.Column(idField)
	if !ok {
		col = idField
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", b.projection.Columns(), b.projection.From(), col), []any{id}
}

func (b *Builder) selectSQL() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From() + b.whereSQL()
}

func (b *Builder) whereSQL() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func (b *Builder) orderBy() string {
	terms := b.terms(b.sort)
	if len(terms) == 0 {
		terms = b.terms(b.fallback)
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func (b *Builder) terms(fields []SortField) []string {
	var terms []string
	for _, f := range fields {
		col, ok := b.projection.Column(f.Field)
		if !ok {
			continue
		}
		if f.Descending {
			terms = append(terms, col+" DESC")
		} else {
			terms = append(terms, col+" ASC")
		}
	}
	return terms
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
