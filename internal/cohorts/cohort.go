// Package cohorts groups a batch's scored candidates into k cohorts.
// Results are computed on demand from the current candidate records and are
// not stored.
package cohorts

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/kmeans"
)

// Feature selects how candidates are projected into vectors.
type Feature string

const (
	// FeatureScore clusters on the overall score alone.
	FeatureScore Feature = "score"
	// FeatureCriteria clusters on the overall score plus every criterion score.
	FeatureCriteria Feature = "criteria"
)

// ParseFeature validates a feature name. Blank input returns fallback.
func ParseFeature(s string, fallback Feature) (Feature, error) {
	switch f := Feature(s); f {
	case "":
		return fallback, nil
	case FeatureScore, FeatureCriteria:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown features %q", ErrInvalidOptions, s)
	}
}

var (
	ErrBatchNotFound  = errors.New("batch not found")
	ErrInvalidOptions = errors.New("invalid clustering options")
)

// MapHTTPStatus maps cohort errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidOptions),
		errors.Is(err, kmeans.ErrInvalidK):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Options tunes one clustering run. A zero K uses the job's cohort count.
type Options struct {
	K        int
	Features Feature
}

// Assignment places one candidate in a cohort.
type Assignment struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Name        string    `json:"name"`
	Score       *int      `json:"score,omitempty"`
	Cohort      int       `json:"cohort"`
}

// Cohort summarises the members of one cluster.
type Cohort struct {
	Index     int         `json:"index"`
	Size      int         `json:"size"`
	Centroid  []float64   `json:"centroid"`
	MeanScore float64     `json:"mean_score"`
	MinScore  int         `json:"min_score"`
	MaxScore  int         `json:"max_score"`
	Members   []uuid.UUID `json:"members"`
}

// Result is one clustering of a batch.
type Result struct {
	BatchID     uuid.UUID    `json:"batch_id"`
	K           int          `json:"k"`
	Features    Feature      `json:"features"`
	Dimensions  []string     `json:"dimensions"`
	Iterations  int          `json:"iterations"`
	Converged   bool         `json:"converged"`
	Assignments []Assignment `json:"assignments"`
	Cohorts     []Cohort     `json:"cohorts"`
}
