// Package jobs implements the job posting domain: the role a batch of
// candidates is screened against, its evaluation matrix, and the cohort count
// used when clustering its candidates.
package jobs

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultClusters is used when a job is created without a cohort count.
const DefaultClusters = 3

// Criterion is one weighted row of a job's evaluation matrix.
type Criterion struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Weight float64 `json:"weight" validate:"gte=0,lte=100"`
}

// Job is a posting candidates are scored against.
type Job struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Department     string      `json:"department"`
	Matrix         []Criterion `json:"matrix"`
	Clusters       int         `json:"clusters"`
	RequiredSkills []string    `json:"required_skills"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Context returns the text the scoring service evaluates a CV against:
// the description when present, otherwise the title.
func (j *Job) Context() string {
	if d := strings.TrimSpace(j.Description); d != "" {
		return d
	}
	return j.Title
}

// CreateCommand carries the fields for a new job.
type CreateCommand struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Description    string      `json:"description" validate:"max=20000"`
	Department     string      `json:"department" validate:"max=100"`
	Matrix         []Criterion `json:"matrix" validate:"dive"`
	Clusters       int         `json:"clusters" validate:"gte=0,lte=20"`
	RequiredSkills []string    `json:"required_skills" validate:"dive,required,max=100"`
}
