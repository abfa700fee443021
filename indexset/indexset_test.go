package indexset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/polychaos/indexset"
)

// TestBuild_TotalOrderCount: |{α : Σα ≤ p}| = C(p+d, d).
func TestBuild_TotalOrderCount(t *testing.T) {
	for _, tc := range []struct{ dim, order int }{
		{1, 0}, {1, 5}, {2, 3}, {3, 4}, {4, 2}, {5, 3},
	} {
		set, err := indexset.Build(tc.dim, tc.order, indexset.TotalOrderPolicy())
		require.NoError(t, err)
		assert.Equal(t, combin.Binomial(tc.order+tc.dim, tc.dim), set.Len(),
			"dim=%d order=%d", tc.dim, tc.order)
	}
}

// TestBuild_TensorCount: tensor truncation has (p+1)^d members.
func TestBuild_TensorCount(t *testing.T) {
	set, err := indexset.Build(3, 2, indexset.TensorPolicy())
	require.NoError(t, err)
	assert.Equal(t, 27, set.Len())

	set, err = indexset.Build(2, 4, indexset.TensorPolicy())
	require.NoError(t, err)
	assert.Equal(t, 25, set.Len())
}

// TestBuild_HyperbolicCross is strictly sparser than total order at equal
// parameters and admits exactly the indices with ∏(α_d+1) ≤ p+1.
func TestBuild_HyperbolicCross(t *testing.T) {
	hyper, err := indexset.Build(2, 3, indexset.HyperbolicCrossPolicy())
	require.NoError(t, err)
	total, err := indexset.Build(2, 3, indexset.TotalOrderPolicy())
	require.NoError(t, err)
	assert.Less(t, hyper.Len(), total.Len())

	for i := 0; i < hyper.Len(); i++ {
		ix := hyper.At(i)
		prod := 1
		for _, deg := range ix {
			prod *= deg + 1
		}
		assert.LessOrEqual(t, prod, 4, "index %v violates the cross bound", ix)
	}
	// (1,1) has product 4 ≤ 4 and must be present.
	_, ok := hyper.Position(indexset.Index{1, 1})
	assert.True(t, ok)
	// (2,1) has product 6 > 4 and must be absent.
	_, ok = hyper.Position(indexset.Index{2, 1})
	assert.False(t, ok)
}

// TestBuild_Anisotropic weights dimensions unevenly: an expensive dimension
// is truncated earlier.
func TestBuild_Anisotropic(t *testing.T) {
	set, err := indexset.Build(2, 4, indexset.AnisotropicPolicy([]float64{1, 2}))
	require.NoError(t, err)

	_, ok := set.Position(indexset.Index{4, 0})
	assert.True(t, ok, "cheap dimension reaches the full order")
	_, ok = set.Position(indexset.Index{0, 2})
	assert.True(t, ok, "2·2 = 4 ≤ 4 admitted")
	_, ok = set.Position(indexset.Index{0, 3})
	assert.False(t, ok, "2·3 = 6 > 4 rejected")
	_, ok = set.Position(indexset.Index{1, 2})
	assert.False(t, ok, "1 + 4 = 5 > 4 rejected")
}

// TestBuild_Validation covers every ErrInvalidTruncation trigger.
func TestBuild_Validation(t *testing.T) {
	_, err := indexset.Build(0, 2, indexset.TotalOrderPolicy())
	assert.ErrorIs(t, err, indexset.ErrInvalidTruncation, "dim < 1")

	_, err = indexset.Build(2, -1, indexset.TotalOrderPolicy())
	assert.ErrorIs(t, err, indexset.ErrInvalidTruncation, "order < 0")

	_, err = indexset.Build(2, 2, indexset.AnisotropicPolicy([]float64{1}))
	assert.ErrorIs(t, err, indexset.ErrInvalidTruncation, "weights length mismatch")

	_, err = indexset.Build(2, 2, indexset.AnisotropicPolicy([]float64{1, 0}))
	assert.ErrorIs(t, err, indexset.ErrInvalidTruncation, "zero weight")

	_, err = indexset.Build(2, 2, indexset.AnisotropicPolicy([]float64{1, -3}))
	assert.ErrorIs(t, err, indexset.ErrInvalidTruncation, "negative weight")
}

// TestBuild_CanonicalOrdering: graded lexicographic, deterministic across
// rebuilds, zero index first.
func TestBuild_CanonicalOrdering(t *testing.T) {
	set, err := indexset.Build(2, 2, indexset.TotalOrderPolicy())
	require.NoError(t, err)
	require.Equal(t, 6, set.Len())

	want := []indexset.Index{
		{0, 0},
		{0, 1}, {1, 0},
		{0, 2}, {1, 1}, {2, 0},
	}
	for i, w := range want {
		assert.Equal(t, w, set.At(i), "position %d", i)
	}

	again, err := indexset.Build(2, 2, indexset.TotalOrderPolicy())
	require.NoError(t, err)
	for i := 0; i < set.Len(); i++ {
		assert.Equal(t, set.At(i), again.At(i), "ordering must be reproducible")
	}
}

// TestSet_PositionRoundTrip: every member maps back to its position; alien
// indices report absence.
func TestSet_PositionRoundTrip(t *testing.T) {
	set, err := indexset.Build(3, 3, indexset.TotalOrderPolicy())
	require.NoError(t, err)

	for i := 0; i < set.Len(); i++ {
		pos, ok := set.Position(set.At(i))
		require.True(t, ok)
		assert.Equal(t, i, pos)
	}
	_, ok := set.Position(indexset.Index{4, 0, 0})
	assert.False(t, ok)
}

// TestSet_MaxDegrees reports per-dimension maxima.
func TestSet_MaxDegrees(t *testing.T) {
	set, err := indexset.Build(2, 4, indexset.AnisotropicPolicy([]float64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, set.MaxDegrees())
}

// TestIndex_Helpers covers Total, IsZero, ActiveDims, String.
func TestIndex_Helpers(t *testing.T) {
	ix := indexset.Index{0, 3, 1}
	assert.Equal(t, 4, ix.Total())
	assert.False(t, ix.IsZero())
	assert.Equal(t, []int{1, 2}, ix.ActiveDims())
	assert.Equal(t, "(0,3,1)", ix.String())
	assert.True(t, indexset.Index{0, 0}.IsZero())
}
