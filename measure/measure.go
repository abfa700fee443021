package measure

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync/atomic"

	"gonum.org/v1/gonum/stat/distuv"
)

// Kind identifies the weight family of a Measure.
type Kind int

const (
	// Uniform is the constant density on a finite interval.
	Uniform Kind = iota
	// Gaussian is the normal density on the whole real line.
	Gaussian
	// Beta is the Beta(α,β) density on a finite interval.
	Beta
	// Arbitrary is a caller-supplied non-negative weight on a finite interval.
	Arbitrary
)

// String returns the lowercase family name.
func (k Kind) String() string {
	switch k {
	case Uniform:
		return "uniform"
	case Gaussian:
		return "gaussian"
	case Beta:
		return "beta"
	case Arbitrary:
		return "arbitrary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// WeightFn evaluates a weight density at a point. It must be non-negative
// over the support it is paired with; it need not be normalized.
type WeightFn func(x float64) float64

// arbitrarySeq distinguishes Arbitrary measures from one another for caching:
// two distinct weight functions must never share a cache key.
var arbitrarySeq atomic.Uint64

// Measure is an immutable scalar probability weight. Construct via
// NewUniform, NewGaussian, NewBeta, NewArbitrary, FromSamples, or New.
// The zero value is not valid.
type Measure struct {
	kind         Kind
	lower, upper float64
	p1, p2       float64 // Gaussian: μ,σ; Beta: α,β
	weightFn     WeightFn
	weightPeak   float64 // rejection-sampling envelope for Arbitrary
	mass         float64
	key          string
}

// New constructs a Measure from a kind tag and named parameters, the entry
// point used by callers that receive measure descriptions as data.
// Recognized names: "lower", "upper" (Uniform, Beta), "mean", "stddev"
// (Gaussian), "alpha", "beta" (Beta). Arbitrary measures carry a weight
// function and cannot be built from parameters alone; use NewArbitrary.
func New(kind Kind, params map[string]float64) (Measure, error) {
	get := func(name string, fallback float64) float64 {
		if v, ok := params[name]; ok {
			return v
		}
		return fallback
	}
	switch kind {
	case Uniform:
		return NewUniform(get("lower", -1), get("upper", 1))
	case Gaussian:
		return NewGaussian(get("mean", 0), get("stddev", 1))
	case Beta:
		return NewBeta(get("alpha", 1), get("beta", 1), get("lower", 0), get("upper", 1))
	case Arbitrary:
		return Measure{}, fmt.Errorf("arbitrary kind needs a weight function: %w", ErrInvalidMeasure)
	default:
		return Measure{}, fmt.Errorf("unknown kind %d: %w", int(kind), ErrInvalidMeasure)
	}
}

// NewUniform returns the uniform probability measure on [lower, upper].
func NewUniform(lower, upper float64) (Measure, error) {
	if err := checkFiniteInterval(lower, upper); err != nil {
		return Measure{}, err
	}

	return Measure{
		kind:  Uniform,
		lower: lower,
		upper: upper,
		mass:  1,
		key:   fmt.Sprintf("uniform[%g,%g]", lower, upper),
	}, nil
}

// NewGaussian returns the normal measure with mean mu and standard
// deviation sigma; the only kind with unbounded support.
func NewGaussian(mu, sigma float64) (Measure, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) || !(sigma > 0) || math.IsInf(sigma, 0) {
		return Measure{}, fmt.Errorf("gaussian(μ=%g, σ=%g): %w", mu, sigma, ErrInvalidMeasure)
	}

	return Measure{
		kind:  Gaussian,
		lower: math.Inf(-1),
		upper: math.Inf(1),
		p1:    mu,
		p2:    sigma,
		mass:  1,
		key:   fmt.Sprintf("gaussian(%g,%g)", mu, sigma),
	}, nil
}

// NewBeta returns the Beta(alpha, beta) measure rescaled to [lower, upper].
// Both shape parameters must be strictly positive.
func NewBeta(alpha, beta, lower, upper float64) (Measure, error) {
	if err := checkFiniteInterval(lower, upper); err != nil {
		return Measure{}, err
	}
	if !(alpha > 0) || !(beta > 0) {
		return Measure{}, fmt.Errorf("beta(α=%g, β=%g): shape parameters must be positive: %w", alpha, beta, ErrInvalidMeasure)
	}

	return Measure{
		kind:  Beta,
		lower: lower,
		upper: upper,
		p1:    alpha,
		p2:    beta,
		mass:  1,
		key:   fmt.Sprintf("beta(%g,%g)[%g,%g]", alpha, beta, lower, upper),
	}, nil
}

// NewArbitrary returns a measure with a caller-supplied weight density on the
// finite interval [lower, upper]. The weight need not be normalized; it must
// be non-negative over the support (violations surface downstream as
// degenerate recurrence coefficients).
func NewArbitrary(lower, upper float64, w WeightFn) (Measure, error) {
	if err := checkFiniteInterval(lower, upper); err != nil {
		return Measure{}, err
	}
	if w == nil {
		return Measure{}, fmt.Errorf("nil weight function: %w", ErrInvalidMeasure)
	}

	m := Measure{
		kind:     Arbitrary,
		lower:    lower,
		upper:    upper,
		weightFn: w,
		key:      fmt.Sprintf("arbitrary#%d[%g,%g]", arbitrarySeq.Add(1), lower, upper),
	}
	m.weightPeak, m.mass = scanWeight(w, lower, upper)

	return m, nil
}

// Kind reports the weight family.
func (m Measure) Kind() Kind { return m.kind }

// Support returns the (lower, upper) bounds; ±Inf for Gaussian.
func (m Measure) Support() (lower, upper float64) { return m.lower, m.upper }

// Key is a stable identity string for cache lookups. Two measures with equal
// keys produce identical recurrence coefficients and rules.
func (m Measure) Key() string { return m.key }

// Mass returns the total weight mass ∫ W(x) dx: exactly 1 for the built-in
// probability families, a trapezoid estimate of the integral for Arbitrary
// weights (which need not be normalized).
func (m Measure) Mass() float64 { return m.mass }

// BetaShape returns the (α, β) shape parameters of a Beta measure; (0, 0)
// for other kinds.
func (m Measure) BetaShape() (alpha, beta float64) {
	if m.kind != Beta {
		return 0, 0
	}

	return m.p1, m.p2
}

// GaussianParams returns the (μ, σ) parameters of a Gaussian measure; (0, 0)
// for other kinds.
func (m Measure) GaussianParams() (mu, sigma float64) {
	if m.kind != Gaussian {
		return 0, 0
	}

	return m.p1, m.p2
}

// Weight evaluates the density at x. Outside the support it returns 0.
func (m Measure) Weight(x float64) float64 {
	switch m.kind {
	case Uniform:
		return distuv.Uniform{Min: m.lower, Max: m.upper}.Prob(x)
	case Gaussian:
		return distuv.Normal{Mu: m.p1, Sigma: m.p2}.Prob(x)
	case Beta:
		if x < m.lower || x > m.upper {
			return 0
		}
		span := m.upper - m.lower

		return distuv.Beta{Alpha: m.p1, Beta: m.p2}.Prob((x-m.lower)/span) / span
	case Arbitrary:
		if x < m.lower || x > m.upper {
			return 0
		}

		return m.weightFn(x)
	default:
		return 0
	}
}

// Sample draws one point distributed according to the measure. Arbitrary
// measures use rejection sampling against a flat envelope scanned at
// construction time.
func (m Measure) Sample(src rand.Source) float64 {
	switch m.kind {
	case Uniform:
		return distuv.Uniform{Min: m.lower, Max: m.upper, Src: src}.Rand()
	case Gaussian:
		return distuv.Normal{Mu: m.p1, Sigma: m.p2, Src: src}.Rand()
	case Beta:
		u := distuv.Beta{Alpha: m.p1, Beta: m.p2, Src: src}.Rand()

		return m.lower + u*(m.upper-m.lower)
	case Arbitrary:
		flat := distuv.Uniform{Min: m.lower, Max: m.upper, Src: src}
		vert := distuv.Uniform{Min: 0, Max: m.weightPeak, Src: src}
		for {
			x := flat.Rand()
			if vert.Rand() <= m.weightFn(x) {
				return x
			}
		}
	default:
		return math.NaN()
	}
}

// ToCanonical maps a point from the physical support onto the canonical
// domain of the associated polynomial family: [-1,1] for Uniform, the
// standardized variable for Gaussian, [0,1] for Beta. Arbitrary measures use
// the physical domain directly (identity).
func (m Measure) ToCanonical(x float64) float64 {
	switch m.kind {
	case Uniform:
		return 2*(x-m.lower)/(m.upper-m.lower) - 1
	case Gaussian:
		return (x - m.p1) / m.p2
	case Beta:
		return (x - m.lower) / (m.upper - m.lower)
	default:
		return x
	}
}

// FromCanonical inverts ToCanonical.
func (m Measure) FromCanonical(t float64) float64 {
	switch m.kind {
	case Uniform:
		return m.lower + (t+1)/2*(m.upper-m.lower)
	case Gaussian:
		return m.p1 + t*m.p2
	case Beta:
		return m.lower + t*(m.upper-m.lower)
	default:
		return t
	}
}

// checkFiniteInterval validates a finite, non-degenerate support.
func checkFiniteInterval(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return fmt.Errorf("support [%g,%g] must be finite: %w", lower, upper, ErrInvalidMeasure)
	}
	if lower >= upper {
		return fmt.Errorf("support [%g,%g] must satisfy lower < upper: %w", lower, upper, ErrInvalidMeasure)
	}

	return nil
}

// scanPeakPoints is the resolution of the construction-time weight scan for
// Arbitrary measures.
const scanPeakPoints = 512

// scanWeight samples w on a uniform grid over [lower, upper] and derives the
// rejection-sampling envelope (largest sample with 1.2 headroom for peaks
// falling between scan points) and a trapezoid estimate of the total mass.
func scanWeight(w WeightFn, lower, upper float64) (envelope, mass float64) {
	var peak float64
	step := (upper - lower) / (scanPeakPoints - 1)
	for i := 0; i < scanPeakPoints; i++ {
		v := w(lower + float64(i)*step)
		if v > peak {
			peak = v
		}
		if i == 0 || i == scanPeakPoints-1 {
			mass += v / 2
		} else {
			mass += v
		}
	}
	mass *= step
	if peak <= 0 {
		peak = 1
	}

	return 1.2 * peak, mass
}
