package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/internal/cohorts"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/pkg/validation"
)

// Submission is one candidate as submitted for screening.
// CVFile is base64 encoded in JSON.
type Submission struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"omitempty,max=320"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	CVText     string `json:"cv_text"`
	CVFile     []byte `json:"cv_file"`
	CVFileName string `json:"cv_file_name" validate:"omitempty,max=255"`
}

// Request is the body of an ingestion call.
type Request struct {
	Candidates []Submission `json:"candidates" validate:"dive"`
}

// Validate checks every submission and the request as a whole.
func (r Request) Validate() error {
	if len(r.Candidates) == 0 {
		return ErrNoSubmissions
	}
	return validation.Struct(r)
}

// Outcome is the result of one submission, in submission order.
type Outcome struct {
	Index     int                   `json:"index"`
	Candidate *candidates.Candidate `json:"candidate,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// Report summarises one ingestion run.
type Report struct {
	BatchID uuid.UUID `json:"batch_id"`
	// Scored counts candidates persisted with a scoring result.
	Scored int `json:"scored"`
	// Failed counts candidates persisted with the scoring fallback.
	Failed int `json:"failed"`
	// Errors counts submissions that could not be persisted.
	Errors   int             `json:"errors"`
	Outcomes []Outcome       `json:"outcomes"`
	Cohorts  *cohorts.Result `json:"cohorts,omitempty"`
}

// CandidateText returns the text submitted for scoring: the CV text when
// present, otherwise a synthetic description built from the job.
func CandidateText(sub Submission, job *jobs.Job) string {
	if text := strings.TrimSpace(sub.CVText); text != "" {
		return text
	}

	experience := "tech"
	if skills := nonBlank(job.RequiredSkills); len(skills) > 0 {
		experience = strings.Join(skills, ", ")
	} else if title := strings.TrimSpace(job.Title); title != "" {
		experience = title
	}

	return fmt.Sprintf("Candidate Name: %s. Experience in %s.", strings.TrimSpace(sub.Name), experience)
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
