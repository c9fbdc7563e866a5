package scoring

import (
	"math"
	"strings"

	"github.com/JaimeStill/screener/pkg/formatting"
)

// Evaluation is the provider's assessment of one criterion.
type Evaluation struct {
	Criteria    string `json:"criteria"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Result is a validated scoring response. Identity fields are nil when the
// provider could not extract them.
type Result struct {
	Score      int          `json:"score"`
	Summary    string       `json:"summary"`
	Evaluation []Evaluation `json:"evaluation"`
	FullName   *string      `json:"fullName,omitempty"`
	Email      *string      `json:"email,omitempty"`
	Phone      *string      `json:"phone,omitempty"`
	Skills     []string     `json:"skills"`
}

type wireEvaluation struct {
	Criteria    string  `json:"criteria"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

type wireResult struct {
	Score      float64          `json:"score"`
	Summary    string           `json:"summary"`
	Evaluation []wireEvaluation `json:"evaluation"`
	FullName   *string          `json:"fullName"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Skills     []string         `json:"skills"`
}

func (w wireResult) result() *Result {
	r := &Result{
		Score:      round(w.Score),
		Summary:    strings.TrimSpace(w.Summary),
		Evaluation: make([]Evaluation, 0, len(w.Evaluation)),
		FullName:   present(w.FullName),
		Email:      present(w.Email),
		Phone:      present(w.Phone),
		Skills:     formatting.DedupeFold(w.Skills),
	}

	for _, e := range w.Evaluation {
		r.Evaluation = append(r.Evaluation, Evaluation{
			Criteria:    strings.TrimSpace(e.Criteria),
			Score:       round(e.Score),
			Description: strings.TrimSpace(e.Description),
		})
	}

	return r
}

func round(v float64) int {
	return int(math.Round(v))
}

// present maps blank and literal "null" strings to nil.
func present(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}
