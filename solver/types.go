package solver

import (
	"errors"

	"github.com/katalvlaran/polychaos/indexset"
	"github.com/katalvlaran/polychaos/recurrence"
)

var (
	// ErrDimensionMismatch indicates the basis set, measures, points, and
	// values disagree on dimension or count.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrInsufficientSamples indicates regression with fewer samples than
	// basis functions and no ridge regularization configured.
	ErrInsufficientSamples = errors.New("solver: fewer samples than basis functions (set Ridge to regularize)")

	// ErrNumericalFailure indicates a matrix factorization broke down, so no
	// coefficients or conditioning report could be produced.
	ErrNumericalFailure = errors.New("solver: matrix factorization failed")
)

// Options tunes the fitting routines.
//   - CondThreshold: condition number beyond which the report flags the fit
//     as ill-conditioned (a warning, not an error).
//   - RankTol: relative singular-value cutoff for the numerical rank.
//   - Ridge: Tikhonov regularization strength for regression; zero disables
//     it. A positive value permits underdetermined sample sets.
//   - Recurrence: forwarded to coefficient generation (mesh size for
//     Arbitrary measures).
type Options struct {
	CondThreshold float64
	RankTol       float64
	Ridge         float64
	Recurrence    recurrence.Options
}

// DefaultOptions returns the recommended fitting settings.
func DefaultOptions() Options {
	return Options{
		CondThreshold: 1e8,
		RankTol:       1e-12,
		Ridge:         0,
		Recurrence:    recurrence.DefaultOptions(),
	}
}

// ConditioningReport summarizes the numerical health of a fit, computed from
// the singular values of the (weighted) design matrix.
type ConditioningReport struct {
	ConditionNumber float64
	Rank            int
	RankDeficient   bool
	IllConditioned  bool // ConditionNumber exceeded Options.CondThreshold
}

// ResidualSummary describes the in-sample misfit of the returned expansion.
type ResidualSummary struct {
	RMSE   float64
	MaxAbs float64
	Mean   float64
}

// CoefficientVector holds orthonormal expansion coefficients ordered exactly
// as the index set that produced them. Ordering is semantically meaningful:
// position i corresponds to set.At(i).
type CoefficientVector struct {
	set    *indexset.Set
	values []float64
}

// NewCoefficientVector pairs a value slice with its index set. The slice is
// copied; lengths must agree.
func NewCoefficientVector(set *indexset.Set, values []float64) (*CoefficientVector, error) {
	if set == nil || set.Len() != len(values) {
		return nil, ErrDimensionMismatch
	}
	v := make([]float64, len(values))
	copy(v, values)

	return &CoefficientVector{set: set, values: v}, nil
}

// Set returns the index set the coefficients are ordered by.
func (c *CoefficientVector) Set() *indexset.Set { return c.set }

// Len reports the number of coefficients.
func (c *CoefficientVector) Len() int { return len(c.values) }

// Value returns the coefficient at canonical position i.
func (c *CoefficientVector) Value(i int) float64 { return c.values[i] }

// At returns the coefficient of a multi-index, or false if the index is not
// in the basis.
func (c *CoefficientVector) At(ix indexset.Index) (float64, bool) {
	i, ok := c.set.Position(ix)
	if !ok {
		return 0, false
	}

	return c.values[i], true
}

// Values returns a copy of the coefficients in canonical order.
func (c *CoefficientVector) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)

	return out
}

// Result bundles the fitted coefficients with diagnostics.
type Result struct {
	Coefficients *CoefficientVector
	Report       ConditioningReport
	Residual     ResidualSummary
}
