package cohorts

import (
	"slices"
	"strings"

	"github.com/JaimeStill/screener/internal/candidates"
)

// Vectors projects candidates into points for clustering and names each dimension.
// Missing scores and criteria contribute 0.
func Vectors(cands []candidates.Candidate, feature Feature) ([]string, [][]float64) {
	dims := []string{"score"}
	var criteria []string
	index := map[string]int{}

	if feature == FeatureCriteria {
		names := map[string]string{}
		for _, c := range cands {
			for _, e := range c.Evaluation {
				key := criterionKey(e.Criteria)
				if _, ok := names[key]; !ok && key != "" {
					names[key] = strings.TrimSpace(e.Criteria)
				}
			}
		}

		keys := make([]string, 0, len(names))
		for k := range names {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for i, k := range keys {
			index[k] = i
			criteria = append(criteria, names[k])
		}
		dims = append(dims, criteria...)
	}

	points := make([][]float64, len(cands))
	for i, c := range cands {
		p := make([]float64, len(dims))
		if c.Score != nil {
			p[0] = float64(*c.Score)
		}
		for _, e := range c.Evaluation {
			if j, ok := index[criterionKey(e.Criteria)]; ok {
				p[1+j] = float64(e.Score)
			}
		}
		points[i] = p
	}

	return dims, points
}

func criterionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
