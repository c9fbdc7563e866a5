package batches

import (
	"github.com/JaimeStill/screener/pkg/query"
	"github.com/JaimeStill/screener/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "batches", "b").
	Project("id", "ID").
	Project("job_id", "JobID").
	Project("name", "Name").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanBatch(s repository.Scanner) (Batch, error) {
	var b Batch
	err := s.Scan(
		&b.ID,
		&b.JobID,
		&b.Name,
		&b.Status,
		&b.CreatedAt,
	)
	return b, err
}
