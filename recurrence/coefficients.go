package recurrence

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/polychaos/measure"
)

var (
	// ErrDegenerateMeasure indicates the Stieltjes procedure lost
	// orthogonality (a computed b_k came out non-positive), typically because
	// the discretization mesh is too coarse for the requested order. Retry
	// with a larger Options.MeshSize.
	ErrDegenerateMeasure = errors.New("recurrence: orthogonality breakdown (non-positive b_k)")

	// ErrBadOrder indicates a non-positive number of coefficient pairs was
	// requested.
	ErrBadOrder = errors.New("recurrence: order must be at least 1")
)

// Coefficients holds n recurrence pairs (A[k], B[k]), k = 0..n−1, for a monic
// orthogonal family. B[0] is the total mass of the weight (1 for normalized
// probability measures); B[k] > 0 for k ≥ 1 is the non-degeneracy invariant.
type Coefficients struct {
	A []float64
	B []float64
}

// Order reports the number of coefficient pairs. n pairs support an n-point
// Gauss rule and orthonormal evaluation up to degree n−1.
func (c Coefficients) Order() int { return len(c.A) }

// Mass returns the total mass of the underlying weight (B[0]).
func (c Coefficients) Mass() float64 {
	if len(c.B) == 0 {
		return 0
	}

	return c.B[0]
}

// Truncate returns an independent copy of the leading n pairs.
func (c Coefficients) Truncate(n int) Coefficients {
	if n > c.Order() {
		n = c.Order()
	}
	out := Coefficients{A: make([]float64, n), B: make([]float64, n)}
	copy(out.A, c.A)
	copy(out.B, c.B)

	return out
}

// Validate checks the structural invariants: equal-length A and B, positive
// mass, and B[k] > 0 for k ≥ 1.
func (c Coefficients) Validate() error {
	if len(c.A) != len(c.B) || len(c.A) == 0 {
		return fmt.Errorf("coefficient arrays %d/%d: %w", len(c.A), len(c.B), ErrBadOrder)
	}
	for k, b := range c.B {
		if !(b > 0) {
			return fmt.Errorf("b_%d = %g: %w", k, b, ErrDegenerateMeasure)
		}
	}

	return nil
}

// Options tunes numerical generation for Arbitrary measures; closed-form
// families ignore it.
//   - MeshSize: number of Fejér discretization points for the Stieltjes
//     procedure. Zero or negative selects an automatic size that resolves
//     the requested order with headroom.
type Options struct {
	MeshSize int
}

// DefaultOptions returns the recommended settings (automatic mesh sizing).
func DefaultOptions() Options { return Options{MeshSize: 0} }

// Generate computes n recurrence pairs for the given measure: analytic
// formulas for Uniform, Gaussian and Beta; discretized Stieltjes for
// Arbitrary. Closed-form coefficients refer to the measure's canonical
// domain; Stieltjes coefficients refer to the physical support directly.
func Generate(m measure.Measure, n int, opts Options) (Coefficients, error) {
	if n < 1 {
		return Coefficients{}, fmt.Errorf("n=%d: %w", n, ErrBadOrder)
	}

	switch m.Kind() {
	case measure.Uniform:
		return legendre(n), nil
	case measure.Gaussian:
		return hermite(n), nil
	case measure.Beta:
		return shiftedJacobi(m, n), nil
	default:
		return stieltjes(m, n, opts)
	}
}

// legendre returns coefficients for Legendre polynomials on [-1,1] under the
// uniform probability density 1/2.
func legendre(n int) Coefficients {
	c := Coefficients{A: make([]float64, n), B: make([]float64, n)}
	c.B[0] = 1
	for k := 1; k < n; k++ {
		kk := float64(k) * float64(k)
		c.B[k] = kk / (4*kk - 1)
	}

	return c
}

// hermite returns coefficients for probabilists' Hermite polynomials under
// the standard normal density.
func hermite(n int) Coefficients {
	c := Coefficients{A: make([]float64, n), B: make([]float64, n)}
	c.B[0] = 1
	for k := 1; k < n; k++ {
		c.B[k] = float64(k)
	}

	return c
}

// shiftedJacobi returns coefficients for the Jacobi family matching a
// Beta(α,β) density, rescaled from [-1,1] to the canonical [0,1] domain.
// With t ∈ [-1,1], the Beta density transforms into the Jacobi weight
// (1−t)^(β−1)·(1+t)^(α−1), i.e. Jacobi exponents a = β−1, b = α−1.
func shiftedJacobi(m measure.Measure, n int) Coefficients {
	alpha, beta := m.BetaShape()
	a := beta - 1
	b := alpha - 1
	ab := a + b

	c := Coefficients{A: make([]float64, n), B: make([]float64, n)}
	c.A[0] = ((b-a)/(ab+2) + 1) / 2
	c.B[0] = 1 // probability-normalized mass
	for k := 1; k < n; k++ {
		fk := float64(k)
		den := (2*fk + ab) * (2*fk + ab + 2)
		c.A[k] = ((b*b-a*a)/den + 1) / 2
		var bj float64
		if k == 1 {
			bj = 4 * (a + 1) * (b + 1) / ((ab + 2) * (ab + 2) * (ab + 3))
		} else {
			num := 4 * fk * (fk + a) * (fk + b) * (fk + ab)
			d := 2*fk + ab
			bj = num / (d * d * (d + 1) * (d - 1))
		}
		c.B[k] = bj / 4 // domain shift [-1,1] → [0,1] scales b_k by 1/4
	}

	return c
}
