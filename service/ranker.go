package service

import (
	"sort"

	"sitecheck-backend/models"
)

// CumulativeMassThreshold is the probability mass at which the ranker
// stops emitting results. The entry that crosses the threshold is still
// included.
const CumulativeMassThreshold = 0.99

// noViolationCaption is the fixed caption for After-phase (resolved)
// classes.
const noViolationCaption = "No violation detected."

// Rank turns a raw class-probability vector into the ranked result list a
// reviewer sees: entries sorted descending by probability, labeled per
// phase, truncated once the accumulated mass reaches the threshold. When
// the vector never reaches the threshold, all entries are returned.
//
// The input is taken as-is: values are not checked for range or for
// summing to one. Ties keep the taxonomy's index order.
func Rank(probs []float32, taxonomy models.Taxonomy) []models.Prediction {
	type scored struct {
		index int
		prob  float32
	}

	entries := make([]scored, len(probs))
	for i, p := range probs {
		entries[i] = scored{index: i, prob: p}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].prob > entries[j].prob
	})

	results := make([]models.Prediction, 0, len(entries))
	var cumulative float64
	for _, e := range entries {
		class := taxonomy[e.index]
		pred := models.Prediction{
			Probability: e.prob,
			Code:        class.Code,
		}

		if class.Phase == models.PhaseBefore {
			pred.Prediction = "Violation - " + class.Code
			caption, ok := models.CodeDescriptions[class.Code]
			if !ok {
				caption = models.FallbackDescription
			}
			pred.Caption = caption
		} else {
			pred.Prediction = "No Violation - " + class.Code
			pred.Caption = noViolationCaption
		}

		results = append(results, pred)
		cumulative += float64(e.prob)
		if cumulative >= CumulativeMassThreshold {
			break
		}
	}

	return results
}
