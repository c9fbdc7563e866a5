package query

import "strings"

// SortField is one ORDER BY term keyed by view field name.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSort reads a comma-separated sort expression such as "Score,-Name".
// A leading "-" sorts descending and a leading "+" is accepted for ascending.
func ParseSort(expr string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimLeft(part, "+-")
		if part == "" {
			continue
		}
		fields = append(fields, SortField{Field: part, Descending: desc})
	}
	return fields
}
