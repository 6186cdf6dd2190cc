package pricing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorive/FiggieMachine/internal/pricing"
	"github.com/dorive/FiggieMachine/internal/tables"
)

var (
	testDist    = tables.GenerateDist()
	testPremium = tables.GeneratePremium()
)

// The color pairing (spades,clubs) / (hearts,diamonds) is baked into the
// tables; these permutations preserve it, so probabilities must follow the
// suits through them exactly.
var pairPreservingPerms = [8][4]int{
	{0, 1, 2, 3},
	{1, 0, 2, 3},
	{0, 1, 3, 2},
	{1, 0, 3, 2},
	{2, 3, 0, 1},
	{3, 2, 0, 1},
	{2, 3, 1, 0},
	{3, 2, 1, 0},
}

func TestEstimatePermutationConsistency(t *testing.T) {
	est := pricing.NewEstimator(testDist)

	base := [4]int{5, 1, 2, 3}
	baseProbs, baseProbs10, err := est.Estimate(base)
	require.NoError(t, err)

	for _, perm := range pairPreservingPerms {
		var permuted [4]int
		for i, from := range perm {
			permuted[i] = base[from]
		}

		probs, probs10, err := est.Estimate(permuted)
		require.NoError(t, err, "counts %v", permuted)

		for i, from := range perm {
			assert.Equal(t, baseProbs[from], probs[i],
				"perm %v: probability did not follow suit %d", perm, from)
			assert.Equal(t, baseProbs10[from], probs10[i],
				"perm %v: prob10 did not follow suit %d", perm, from)
		}
	}
}

func TestEstimateSumsToOne(t *testing.T) {
	est := pricing.NewEstimator(testDist)

	for _, counts := range [][4]int{
		{0, 0, 0, 0},
		{3, 3, 3, 4},
		{2, 5, 1, 0},
		{10, 9, 9, 8},
	} {
		probs, _, err := est.Estimate(counts)
		require.NoError(t, err, "counts %v", counts)
		sum := probs[0] + probs[1] + probs[2] + probs[3]
		assert.InDelta(t, 1.0, sum, 1e-3, "counts %v", counts)
	}
}

func TestEstimateOutsideSupport(t *testing.T) {
	est := pricing.NewEstimator(testDist)

	// Two suits over ten cards is impossible with one 12-card suit.
	_, _, err := est.Estimate([4]int{12, 11, 0, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricing.ErrNoTableRow))
}

func TestEstimateDealtScenario(t *testing.T) {
	// Dealt hand 3/3/3/4 with no opponents seen: diamonds is the max, a
	// canonical row must exist, probabilities sum to one.
	est := pricing.NewEstimator(testDist)

	probs, probs10, err := est.Estimate([4]int{3, 3, 3, 4})
	require.NoError(t, err)

	sum := probs[0] + probs[1] + probs[2] + probs[3]
	assert.InDelta(t, 1.0, sum, 1e-3)

	// Diamonds showing the most makes its partner (hearts) likeliest.
	for _, s := range []int{0, 1, 3} {
		assert.GreaterOrEqual(t, probs[2], probs[s])
	}
	for i := 0; i < 4; i++ {
		assert.False(t, math.IsNaN(probs10[i]))
	}
}
