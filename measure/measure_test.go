package measure_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polychaos/measure"
)

// TestNewUniform_Validation verifies that malformed supports are rejected
// with ErrInvalidMeasure.
func TestNewUniform_Validation(t *testing.T) {
	_, err := measure.NewUniform(1, 1)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "empty interval must error")

	_, err = measure.NewUniform(2, -2)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "inverted interval must error")

	_, err = measure.NewUniform(math.Inf(-1), 0)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "infinite uniform support must error")

	_, err = measure.NewUniform(math.NaN(), 1)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "NaN bound must error")
}

// TestNewGaussian_Validation verifies σ > 0 is enforced while the unbounded
// support is accepted.
func TestNewGaussian_Validation(t *testing.T) {
	_, err := measure.NewGaussian(0, 0)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "zero σ must error")

	_, err = measure.NewGaussian(0, -1)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "negative σ must error")

	m, err := measure.NewGaussian(3, 2)
	require.NoError(t, err)
	lower, upper := m.Support()
	assert.True(t, math.IsInf(lower, -1) && math.IsInf(upper, 1), "gaussian support is the real line")
}

// TestNewBeta_Validation verifies positive shape parameters are required.
func TestNewBeta_Validation(t *testing.T) {
	_, err := measure.NewBeta(0, 1, 0, 1)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "α=0 must error")

	_, err = measure.NewBeta(2, -3, 0, 1)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "β<0 must error")
}

// TestNewArbitrary_Validation verifies the weight function and finite
// support requirements.
func TestNewArbitrary_Validation(t *testing.T) {
	_, err := measure.NewArbitrary(0, 1, nil)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "nil weight must error")

	_, err = measure.NewArbitrary(0, math.Inf(1), func(float64) float64 { return 1 })
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "infinite arbitrary support must error")
}

// TestNew_FromParams exercises the data-driven constructor.
func TestNew_FromParams(t *testing.T) {
	m, err := measure.New(measure.Uniform, map[string]float64{"lower": 2, "upper": 5})
	require.NoError(t, err)
	lower, upper := m.Support()
	assert.Equal(t, 2.0, lower)
	assert.Equal(t, 5.0, upper)

	_, err = measure.New(measure.Arbitrary, nil)
	assert.ErrorIs(t, err, measure.ErrInvalidMeasure, "arbitrary cannot be built from params alone")
}

// TestWeight_Densities checks that the densities are correctly normalized.
func TestWeight_Densities(t *testing.T) {
	uni, err := measure.NewUniform(-2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, uni.Weight(0), 1e-14, "uniform density is 1/(upper-lower)")
	assert.Zero(t, uni.Weight(3), "density vanishes outside the support")

	gauss, err := measure.NewGaussian(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), gauss.Weight(0), 1e-14, "standard normal peak")

	// Beta(2,2) on [0,1]: density 6x(1-x), peak 1.5 at the midpoint.
	beta, err := measure.NewBeta(2, 2, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, beta.Weight(0.5), 1e-12)

	// Rescaled to [0,2] the density halves.
	betaWide, err := measure.NewBeta(2, 2, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, betaWide.Weight(1), 1e-12)
}

// TestCanonical_RoundTrip verifies ToCanonical/FromCanonical are inverse
// affine maps with the documented canonical domains.
func TestCanonical_RoundTrip(t *testing.T) {
	uni, err := measure.NewUniform(0, 10)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, uni.ToCanonical(0), 1e-14)
	assert.InDelta(t, 1.0, uni.ToCanonical(10), 1e-14)
	assert.InDelta(t, 7.5, uni.FromCanonical(uni.ToCanonical(7.5)), 1e-12)

	gauss, err := measure.NewGaussian(5, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gauss.ToCanonical(5), 1e-14, "mean maps to zero")
	assert.InDelta(t, 1.0, gauss.ToCanonical(7), 1e-14, "one σ maps to one")

	beta, err := measure.NewBeta(3, 1, -1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, beta.ToCanonical(-1), 1e-14)
	assert.InDelta(t, 1.0, beta.ToCanonical(3), 1e-14)
}

// TestSample_StaysInSupport draws from each kind and checks support bounds
// and rough location.
func TestSample_StaysInSupport(t *testing.T) {
	src := rand.NewPCG(7, 11)

	uni, err := measure.NewUniform(-1, 1)
	require.NoError(t, err)
	arb, err := measure.NewArbitrary(-1, 1, func(x float64) float64 { return 1 - x*x })
	require.NoError(t, err)

	var uniSum float64
	for i := 0; i < 2000; i++ {
		x := uni.Sample(src)
		require.GreaterOrEqual(t, x, -1.0)
		require.LessOrEqual(t, x, 1.0)
		uniSum += x

		y := arb.Sample(src)
		require.GreaterOrEqual(t, y, -1.0)
		require.LessOrEqual(t, y, 1.0)
	}
	assert.InDelta(t, 0.0, uniSum/2000, 0.05, "uniform sample mean near zero")
}

// TestKey_DistinguishesMeasures verifies cache keys separate families,
// parameters, and distinct arbitrary weight functions.
func TestKey_DistinguishesMeasures(t *testing.T) {
	a, err := measure.NewUniform(-1, 1)
	require.NoError(t, err)
	b, err := measure.NewUniform(-1, 1)
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key(), "identical uniforms share a key")

	c, err := measure.NewUniform(0, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key(), "different supports differ")

	w := func(x float64) float64 { return 1 }
	arb1, err := measure.NewArbitrary(0, 1, w)
	require.NoError(t, err)
	arb2, err := measure.NewArbitrary(0, 1, w)
	require.NoError(t, err)
	assert.NotEqual(t, arb1.Key(), arb2.Key(), "arbitrary measures never share a key")
}

// TestMass reports exactly 1 for the probability families and the integral
// of the weight for arbitrary (possibly unnormalized) densities.
func TestMass(t *testing.T) {
	u, err := measure.NewUniform(-2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, u.Mass())

	g, err := measure.NewGaussian(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Mass())

	b, err := measure.NewBeta(2, 3, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Mass())

	flat, err := measure.NewArbitrary(-1, 1, func(float64) float64 { return 3 })
	require.NoError(t, err)
	assert.InDelta(t, 6.0, flat.Mass(), 1e-12, "∫3 dx over [-1,1]")

	para, err := measure.NewArbitrary(-1, 1, func(x float64) float64 { return 1 - x*x })
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, para.Mass(), 1e-5, "∫(1−x²) dx = 4/3")
}

// TestFromSamples_KDE builds an empirical measure from normal draws and
// checks the estimated density is reasonable near the center.
func TestFromSamples_KDE(t *testing.T) {
	_, err := measure.FromSamples([]float64{1, 2, 3})
	assert.ErrorIs(t, err, measure.ErrInsufficientData, "too few samples must error")

	_, err = measure.FromSamples([]float64{2, 2, 2, 2, 2, 2, 2, 2})
	assert.ErrorIs(t, err, measure.ErrInsufficientData, "zero spread must error")

	src := rand.New(rand.NewPCG(42, 43))
	data := make([]float64, 4000)
	for i := range data {
		data[i] = src.NormFloat64()
	}
	m, err := measure.FromSamples(data)
	require.NoError(t, err)
	assert.Equal(t, measure.Arbitrary, m.Kind())

	lower, upper := m.Support()
	assert.Less(t, lower, -2.5, "support covers the sample range")
	assert.Greater(t, upper, 2.5)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), m.Weight(0), 0.05, "KDE near the true density at the mode")
}
