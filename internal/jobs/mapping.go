package jobs

import (
	"net/url"

	"github.com/JaimeStill/screener/pkg/query"
	"github.com/JaimeStill/screener/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "jobs", "j").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("department", "Department").
	Project("matrix", "Matrix").
	Project("clusters", "Clusters").
	Project("required_skills", "RequiredSkills").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for job queries.
// Department uses exact matching; Title uses case-insensitive contains matching.
type Filters struct {
	Title      *string `json:"title,omitempty"`
	Department *string `json:"department,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Title", f.Title).
		WhereEquals("Department", f.Department)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}
	if d := values.Get("department"); d != "" {
		f.Department = &d
	}

	return f
}

func scanJob(s repository.Scanner) (Job, error) {
	var (
		j      Job
		matrix repository.JSON[[]Criterion]
		skills repository.JSON[[]string]
	)

	err := s.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Department,
		&matrix,
		&j.Clusters,
		&skills,
		&j.CreatedAt,
	)

	j.Matrix = nonNil(matrix.V)
	j.RequiredSkills = nonNil(skills.V)
	return j, err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
