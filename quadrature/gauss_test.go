package quadrature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/quadrature"
	"github.com/katalvlaran/polychaos/recurrence"
)

const tol = 1e-10

// uniformMoment is the analytic k-th moment of the uniform measure on
// [-1,1]: 1/(k+1) for even k, zero for odd k.
func uniformMoment(k int) float64 {
	if k%2 == 1 {
		return 0
	}

	return 1 / float64(k+1)
}

// normalMoment is the analytic k-th moment of the standard normal:
// (k−1)!! for even k, zero for odd.
func normalMoment(k int) float64 {
	if k%2 == 1 {
		return 0
	}
	v := 1.0
	for i := k - 1; i > 1; i -= 2 {
		v *= float64(i)
	}

	return v
}

// TestGauss_LegendreExactness: an n-point rule reproduces every uniform
// moment up to degree 2n−1, the defining Gauss property.
func TestGauss_LegendreExactness(t *testing.T) {
	cache := recurrence.NewCache()
	m, err := measure.NewUniform(-1, 1)
	require.NoError(t, err)

	for n := 1; n <= 10; n++ {
		rule, err := quadrature.GaussFor(m, cache, n, recurrence.DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, n, rule.Len())

		for k := 0; k <= 2*n-1; k++ {
			got := rule.Integrate(func(x []float64) float64 { return math.Pow(x[0], float64(k)) })
			assert.InDelta(t, uniformMoment(k), got, tol, "n=%d moment %d", n, k)
		}
	}
}

// TestGauss_HermiteExactness: same property under the standard normal.
func TestGauss_HermiteExactness(t *testing.T) {
	cache := recurrence.NewCache()
	m, err := measure.NewGaussian(0, 1)
	require.NoError(t, err)

	for n := 1; n <= 8; n++ {
		rule, err := quadrature.GaussFor(m, cache, n, recurrence.DefaultOptions())
		require.NoError(t, err)

		for k := 0; k <= 2*n-1; k++ {
			got := rule.Integrate(func(x []float64) float64 { return math.Pow(x[0], float64(k)) })
			assert.InDelta(t, normalMoment(k), got, 1e-8, "n=%d moment %d", n, k)
		}
	}
}

// TestGauss_PositiveWeightsUnitMass: genuine Gauss weights are strictly
// positive, sum to the measure mass, and nodes come back ascending.
func TestGauss_PositiveWeightsUnitMass(t *testing.T) {
	cache := recurrence.NewCache()
	m, err := measure.NewBeta(2, 5, 0, 1)
	require.NoError(t, err)

	rule, err := quadrature.GaussFor(m, cache, 12, recurrence.DefaultOptions())
	require.NoError(t, err)

	assert.False(t, rule.HasNegativeWeights())
	assert.InDelta(t, 1.0, rule.Mass(), tol)
	nodes := rule.Nodes1D()
	for i := 1; i < len(nodes); i++ {
		assert.Greater(t, nodes[i], nodes[i-1], "nodes ascending")
	}
	for _, x := range nodes {
		assert.Greater(t, x, 0.0)
		assert.Less(t, x, 1.0, "Beta nodes stay inside the support")
	}
}

// TestGaussFor_PhysicalDomain: nodes of a scaled uniform measure live on the
// physical support, not the canonical one.
func TestGaussFor_PhysicalDomain(t *testing.T) {
	cache := recurrence.NewCache()
	m, err := measure.NewUniform(10, 20)
	require.NoError(t, err)

	rule, err := quadrature.GaussFor(m, cache, 5, recurrence.DefaultOptions())
	require.NoError(t, err)

	mean := rule.Integrate(func(x []float64) float64 { return x[0] })
	assert.InDelta(t, 15.0, mean, tol, "mean of uniform[10,20]")
	for _, x := range rule.Nodes1D() {
		assert.Greater(t, x, 10.0)
		assert.Less(t, x, 20.0)
	}
}

// TestGauss_ArbitraryMeasure drives Golub–Welsch from Stieltjes coefficients
// and checks moments of the semicircle-like weight 1−x².
func TestGauss_ArbitraryMeasure(t *testing.T) {
	cache := recurrence.NewCache()
	m, err := measure.NewArbitrary(-1, 1, func(x float64) float64 { return 1 - x*x })
	require.NoError(t, err)

	rule, err := quadrature.GaussFor(m, cache, 6, recurrence.DefaultOptions())
	require.NoError(t, err)

	// ∫(1−x²)dx = 4/3, ∫x²(1−x²)dx = 2/3 − 2/5 = 4/15.
	assert.InDelta(t, 4.0/3.0, rule.Mass(), 1e-8)
	second := rule.Integrate(func(x []float64) float64 { return x[0] * x[0] })
	assert.InDelta(t, 4.0/15.0, second, 1e-8)
}

// TestGauss_InvalidInput covers the construction error paths.
func TestGauss_InvalidInput(t *testing.T) {
	_, err := quadrature.Gauss(recurrence.Coefficients{}, 1)
	assert.ErrorIs(t, err, quadrature.ErrBadRule, "empty coefficients")

	good := recurrence.Coefficients{A: []float64{0, 0}, B: []float64{1, 0.5}}
	_, err = quadrature.Gauss(good, 3)
	assert.ErrorIs(t, err, quadrature.ErrBadRule, "more points than pairs")

	broken := recurrence.Coefficients{A: []float64{0, 0}, B: []float64{1, -0.5}}
	_, err = quadrature.Gauss(broken, 2)
	assert.ErrorIs(t, err, recurrence.ErrDegenerateMeasure, "negative b_k rejected by validation")
}
