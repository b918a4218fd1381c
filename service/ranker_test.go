package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sitecheck-backend/models"
)

func TestRank_SortedDescending(t *testing.T) {
	probs := []float32{0.01, 0.2, 0.05, 0.3, 0.02, 0.1, 0.07, 0.08, 0.03, 0.09, 0.04, 0.01}
	results := Rank(probs, models.DefaultTaxonomy)

	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i-1].Probability, results[i].Probability)
	}
}

func TestRank_CumulativeThresholdTruncation(t *testing.T) {
	// Already sorted descending; cumulative sum crosses 0.99 at the ninth
	// entry (0.5+0.3+0.05+0.05+0.02*4+0.01 = 0.99).
	probs := []float32{0.5, 0.3, 0.05, 0.05, 0.02, 0.02, 0.02, 0.02, 0.01, 0.005, 0.004, 0.001}
	results := Rank(probs, models.DefaultTaxonomy)

	require.Len(t, results, 9)

	var sum float64
	for _, r := range results {
		sum += float64(r.Probability)
	}
	require.GreaterOrEqual(t, sum, float64(CumulativeMassThreshold))

	// One entry fewer must sit below the threshold.
	sum -= float64(results[len(results)-1].Probability)
	require.Less(t, sum, float64(CumulativeMassThreshold))
}

func TestRank_ReturnsAllWhenThresholdUnreachable(t *testing.T) {
	probs := make([]float32, 12)
	for i := range probs {
		probs[i] = 0.05
	}
	results := Rank(probs, models.DefaultTaxonomy)
	require.Len(t, results, 12)
}

func TestRank_PhaseLabels(t *testing.T) {
	// Flat distribution keeps taxonomy order, so result i maps to class i.
	probs := make([]float32, 12)
	for i := range probs {
		probs[i] = 0.05
	}
	results := Rank(probs, models.DefaultTaxonomy)

	for i, r := range results {
		class := models.DefaultTaxonomy[i]
		if class.Phase == models.PhaseBefore {
			require.True(t, strings.HasPrefix(r.Prediction, "Violation - "), "index %d: %s", i, r.Prediction)
			require.Equal(t, models.CodeDescriptions[class.Code], r.Caption)
		} else {
			require.True(t, strings.HasPrefix(r.Prediction, "No Violation - "), "index %d: %s", i, r.Prediction)
			require.Equal(t, "No violation detected.", r.Caption)
		}
		require.Equal(t, class.Code, r.Code)
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	probs := make([]float32, 12)
	for i := range probs {
		probs[i] = 0.05
	}
	results := Rank(probs, models.DefaultTaxonomy)

	for i, r := range results {
		require.Equal(t, models.DefaultTaxonomy[i].Code, r.Code, "tie at index %d must keep taxonomy order", i)
	}
}

func TestRank_FallbackCaptionForUnregisteredCode(t *testing.T) {
	taxonomy := models.Taxonomy{
		{Code: "Unregistered", Phase: models.PhaseBefore},
		{Code: "Unregistered", Phase: models.PhaseAfter},
	}
	results := Rank([]float32{0.9, 0.1}, taxonomy)

	require.Len(t, results, 2)
	require.Equal(t, "Violation - Unregistered", results[0].Prediction)
	require.Equal(t, models.FallbackDescription, results[0].Caption)
}

func TestRank_NegativeValuesPassThrough(t *testing.T) {
	// Malformed vectors are not validated; the sort and accumulation
	// proceed arithmetically.
	probs := []float32{1.2, -0.1, 0.05, 0.05, 0, 0, 0, 0, 0, 0, 0, 0}
	results := Rank(probs, models.DefaultTaxonomy)

	require.Equal(t, float32(1.2), results[0].Probability)
	require.Len(t, results, 1)
}
