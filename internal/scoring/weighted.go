package scoring

import (
	"strings"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
)

// WeightedCategoryScore aggregates the answered questions listed in ids into a
// single [0, 1] score. Each answer is normalized within its own option range
// (after inversion when the question is reverse scored) and weighted by the
// question weight. A category with no answered questions, or zero total
// weight, scores a neutral 0.5.
func WeightedCategoryScore(answers AnswerSet, questions []catalogue.Question, ids []string) float64 {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var weightedSum, totalWeight float64
	for _, q := range questions {
		if !wanted[q.ID] || !answers.has(q.ID) {
			continue
		}
		lo, hi := q.Range()
		raw := answers[q.ID]
		if q.ReverseScored {
			raw = hi - raw + lo
		}
		weightedSum += Normalize(float64(raw), float64(lo), float64(hi)) * q.Weight
		totalWeight += q.Weight
	}
	if totalWeight == 0 {
		return 0.5
	}
	return weightedSum / totalWeight
}

// questionIDs returns the ids of the questions carrying prefix.
func questionIDs(questions []catalogue.Question, prefix string) []string {
	var ids []string
	for _, q := range questions {
		if strings.HasPrefix(q.ID, prefix) {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
