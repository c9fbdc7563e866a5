package candidates

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/query"
	"github.com/JaimeStill/screener/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "candidates", "c").
	Project("id", "ID").
	Project("batch_id", "BatchID").
	Project("name", "Name").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("skills", "Skills").
	Project("status", "Status").
	Project("score", "Score").
	Project("evaluation", "Evaluation").
	Project("summary", "Summary").
	Project("submission_date", "SubmissionDate").
	Project("cv_file_key", "CVFileKey").
	Project("cv_file_name", "CVFileName").
	Project("cv_file_size", "CVFileSize").
	Project("cv_mime_type", "CVMimeType").
	Project("cv_page_count", "CVPageCount").
	Join("public", "batches", "b", "JOIN", "c.batch_id = b.id").
	Project("job_id", "JobID")

var defaultSort = query.SortField{
	Field:      "Score",
	Descending: true,
}

var batchSort = query.SortField{
	Field: "SubmissionDate",
}

// Filters contains optional filtering criteria for candidate queries.
type Filters struct {
	JobID   *uuid.UUID `json:"job_id,omitempty"`
	BatchID *uuid.UUID `json:"batch_id,omitempty"`
	Status  *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("JobID", f.JobID).
		WhereEquals("BatchID", f.BatchID).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Malformed identifiers are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("job_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.JobID = &id
		}
	}

	if v := values.Get("batch_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.BatchID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanCandidate(s repository.Scanner) (Candidate, error) {
	var (
		c          Candidate
		skills     repository.JSON[[]string]
		evaluation repository.JSON[[]Evaluation]
		summary    *string
		fileKey    *string
		fileName   *string
		fileSize   *int64
		mimeType   *string
		pageCount  *int
	)

	err := s.Scan(
		&c.ID,
		&c.BatchID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&skills,
		&c.Status,
		&c.Score,
		&evaluation,
		&summary,
		&c.SubmissionDate,
		&fileKey,
		&fileName,
		&fileSize,
		&mimeType,
		&pageCount,
		&c.JobID,
	)
	if err != nil {
		return c, err
	}

	c.Skills = skills.V
	if c.Skills == nil {
		c.Skills = []string{}
	}
	c.Evaluation = evaluation.V
	if c.Evaluation == nil {
		c.Evaluation = []Evaluation{}
	}
	if summary != nil {
		c.Summary = *summary
	}

	if fileKey != nil {
		c.CV = &Attachment{
			Key:       *fileKey,
			PageCount: pageCount,
		}
		if fileName != nil {
			c.CV.FileName = *fileName
		}
		if fileSize != nil {
			c.CV.Size = *fileSize
		}
		if mimeType != nil {
			c.CV.MimeType = *mimeType
		}
	}

	return c, nil
}
