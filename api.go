package polychaos

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/polychaos/basis"
	"github.com/katalvlaran/polychaos/indexset"
	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/moments"
	"github.com/katalvlaran/polychaos/quadrature"
	"github.com/katalvlaran/polychaos/recurrence"
	"github.com/katalvlaran/polychaos/solver"
)

// Mode selects how a multivariate quadrature rule is composed.
type Mode int

const (
	// Tensor builds the full Cartesian product rule.
	Tensor Mode = iota
	// Sparse builds the Smolyak sparse-grid rule over the index set.
	Sparse
	// MonteCarlo draws an equal-weight random rule.
	MonteCarlo
)

// Engine bundles a shared recurrence cache with fitting defaults, exposing
// the narrow numeric API consumed by the surrounding tooling. One Engine may
// serve many goroutines.
type Engine struct {
	cache *recurrence.Cache
	opts  solver.Options
	seed  uint64
}

// Option adjusts an Engine at construction.
type Option func(*Engine)

// WithSolverOptions replaces the fitting defaults.
func WithSolverOptions(opts solver.Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithSeed fixes the Monte Carlo sampling seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// New returns an Engine with a fresh cache and default options.
func New(options ...Option) *Engine {
	e := &Engine{
		cache: recurrence.NewCache(),
		opts:  solver.DefaultOptions(),
		seed:  1,
	}
	for _, opt := range options {
		opt(e)
	}

	return e
}

// BuildMeasure constructs a measure from a kind tag and named parameters.
// It is measure.New re-exported so data-driven callers need only this
// package.
func BuildMeasure(kind measure.Kind, params map[string]float64) (measure.Measure, error) {
	return measure.New(kind, params)
}

// QuadratureRule builds an n-dimensional rule of the requested mode for the
// given per-dimension measures. order is the per-dimension polynomial order
// the rule should integrate against (Tensor uses order+1 points per
// dimension; Sparse drives the Smolyak combination with the policy's index
// set; MonteCarlo ignores the policy and draws a seeded sample sized to the
// matching total-order basis).
func (e *Engine) QuadratureRule(measures []measure.Measure, order int, mode Mode, policy indexset.Policy) (*quadrature.Rule, error) {
	dim := len(measures)
	if dim == 0 {
		return nil, fmt.Errorf("no measures: %w", quadrature.ErrBadRule)
	}

	switch mode {
	case Tensor:
		orders := make([]int, dim)
		for d := range orders {
			orders[d] = order + 1
		}

		return quadrature.TensorFor(measures, orders, e.cache, e.opts.Recurrence)
	case Sparse:
		set, err := indexset.Build(dim, order, policy)
		if err != nil {
			return nil, err
		}

		return quadrature.SparseFor(measures, set, e.cache, e.opts.Recurrence)
	case MonteCarlo:
		set, err := indexset.Build(dim, order, indexset.TotalOrderPolicy())
		if err != nil {
			return nil, err
		}

		return quadrature.MonteCarlo(measures, 10*set.Len(), e.seed)
	default:
		return nil, fmt.Errorf("unknown mode %d: %w", int(mode), quadrature.ErrBadRule)
	}
}

// EvaluateBasis returns the matrix of multivariate orthonormal basis values
// at physical-domain points: rows are basis indices in the set's canonical
// order, columns are points.
func (e *Engine) EvaluateBasis(measures []measure.Measure, set *indexset.Set, points [][]float64) (*mat.Dense, error) {
	return basis.EvaluateFor(measures, set, points, e.cache, e.opts.Recurrence)
}

// FitQuadrature fits f by quadrature projection over a tensor Gauss rule
// sized to the basis (order+1 points per dimension, exact through degree
// 2·order+1).
func (e *Engine) FitQuadrature(measures []measure.Measure, policy indexset.Policy, order int, f func(x []float64) float64) (*solver.Result, error) {
	set, err := indexset.Build(len(measures), order, policy)
	if err != nil {
		return nil, err
	}

	orders := make([]int, len(measures))
	for d := range orders {
		orders[d] = order + 1
	}
	rule, err := quadrature.TensorFor(measures, orders, e.cache, e.opts.Recurrence)
	if err != nil {
		return nil, err
	}

	return solver.FitFunction(set, measures, rule, f, e.cache, e.opts)
}

// FitSamples fits scattered (point, value) data by SVD least-squares
// regression.
func (e *Engine) FitSamples(measures []measure.Measure, policy indexset.Policy, order int, points [][]float64, values []float64) (*solver.Result, error) {
	set, err := indexset.Build(len(measures), order, policy)
	if err != nil {
		return nil, err
	}

	return solver.FitRegression(set, measures, points, values, e.cache, e.opts)
}

// Surrogate packages a fit result for pointwise evaluation against this
// engine's cache.
func (e *Engine) Surrogate(coeffs *solver.CoefficientVector, measures []measure.Measure) (*solver.Surrogate, error) {
	return solver.NewSurrogate(coeffs, measures, e.cache, e.opts.Recurrence)
}

// ComputeStatistics derives mean, variance, and Sobol indices from fitted
// coefficients. It is moments.Summarize re-exported.
func ComputeStatistics(coeffs *solver.CoefficientVector) (moments.Summary, error) {
	return moments.Summarize(coeffs)
}
