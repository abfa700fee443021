package solver

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/polychaos/basis"
	"github.com/katalvlaran/polychaos/indexset"
	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/quadrature"
	"github.com/katalvlaran/polychaos/recurrence"
)

// designChunk is the point-block size for parallel design-matrix assembly;
// evaluation is embarrassingly parallel across sample points.
const designChunk = 256

// Fit computes expansion coefficients by quadrature projection: for each
// basis index α,
//
//	c_α = Σ_i w_i · f(x_i) · φ_α(x_i).
//
// values[i] is the target function at rule node i. The basis is orthonormal
// under the discrete measure the rule represents, mass included, so no
// separate normalization applies; unnormalized weights project correctly.
// The projection is exact for integrands within the rule's degree of
// exactness; the attached report reflects the weighted design matrix either
// way.
func Fit(set *indexset.Set, measures []measure.Measure, rule *quadrature.Rule, values []float64, cache *recurrence.Cache, opts Options) (*Result, error) {
	if set == nil || rule == nil || rule.Dimension != set.Dimension() || len(measures) != set.Dimension() {
		return nil, fmt.Errorf("set/rule/measures dimensions disagree: %w", ErrDimensionMismatch)
	}
	if len(values) != rule.Len() {
		return nil, fmt.Errorf("%d values for %d nodes: %w", len(values), rule.Len(), ErrDimensionMismatch)
	}

	design, err := designMatrix(set, measures, rule.Nodes, cache, opts.Recurrence)
	if err != nil {
		return nil, err
	}

	coeffs := make([]float64, set.Len())
	for a := range coeffs {
		var sum float64
		for i := range values {
			sum += rule.Weights[i] * values[i] * design.At(i, a)
		}
		coeffs[a] = sum
	}

	cv, err := NewCoefficientVector(set, coeffs)
	if err != nil {
		return nil, err
	}

	// Conditioning of the weighted design matrix √|w|·Φ; for positive-weight
	// Gauss rules this is near-orthogonal by construction; sparse rules with
	// negative weights show their cancellation here.
	weighted := mat.NewDense(rule.Len(), set.Len(), nil)
	for i := 0; i < rule.Len(); i++ {
		s := math.Sqrt(math.Abs(rule.Weights[i]))
		for a := 0; a < set.Len(); a++ {
			weighted.Set(i, a, s*design.At(i, a))
		}
	}
	report, _, err := conditioning(weighted, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Coefficients: cv,
		Report:       report,
		Residual:     residuals(design, coeffs, values),
	}, nil
}

// FitFunction is Fit with the target supplied as a callable evaluated at the
// rule nodes.
func FitFunction(set *indexset.Set, measures []measure.Measure, rule *quadrature.Rule, f func(x []float64) float64, cache *recurrence.Cache, opts Options) (*Result, error) {
	if rule == nil {
		return nil, fmt.Errorf("nil rule: %w", ErrDimensionMismatch)
	}
	values := make([]float64, rule.Len())
	for i, node := range rule.Nodes {
		values[i] = f(node)
	}

	return Fit(set, measures, rule, values, cache, opts)
}

// FitRegression fits coefficients to scattered samples by SVD least
// squares. With fewer samples than basis functions it requires a positive
// ridge parameter; rank-deficient systems yield the minimum-norm solution
// with RankDeficient set on the report.
func FitRegression(set *indexset.Set, measures []measure.Measure, points [][]float64, values []float64, cache *recurrence.Cache, opts Options) (*Result, error) {
	if set == nil || len(measures) != set.Dimension() {
		return nil, fmt.Errorf("%d measures for basis set: %w", len(measures), ErrDimensionMismatch)
	}
	if len(points) != len(values) {
		return nil, fmt.Errorf("%d points vs %d values: %w", len(points), len(values), ErrDimensionMismatch)
	}
	if len(points) < set.Len() && !(opts.Ridge > 0) {
		return nil, fmt.Errorf("%d samples for %d basis functions: %w", len(points), set.Len(), ErrInsufficientSamples)
	}

	design, err := designMatrix(set, measures, points, cache, opts.Recurrence)
	if err != nil {
		return nil, err
	}

	report, svd, err := conditioning(design, opts)
	if err != nil {
		return nil, err
	}
	coeffs := solveSVD(svd, values, report.Rank, opts.Ridge)

	cv, err := NewCoefficientVector(set, coeffs)
	if err != nil {
		return nil, err
	}

	return &Result{
		Coefficients: cv,
		Report:       report,
		Residual:     residuals(design, coeffs, values),
	}, nil
}

// designMatrix assembles Φ with rows = points and columns = basis indices,
// fanning point blocks out across workers.
func designMatrix(set *indexset.Set, measures []measure.Measure, points [][]float64, cache *recurrence.Cache, rOpts recurrence.Options) (*mat.Dense, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no evaluation points: %w", ErrDimensionMismatch)
	}

	// Warm the cache once so workers only read.
	maxes := set.MaxDegrees()
	orders := make([]int, len(maxes))
	for d, deg := range maxes {
		orders[d] = deg + 1
	}
	if _, err := recurrence.GenerateAll(cache, measures, orders, rOpts); err != nil {
		return nil, err
	}

	out := mat.NewDense(len(points), set.Len(), nil)
	var g errgroup.Group
	for start := 0; start < len(points); start += designChunk {
		end := start + designChunk
		if end > len(points) {
			end = len(points)
		}
		g.Go(func() error {
			block, err := basis.EvaluateFor(measures, set, points[start:end], cache, rOpts)
			if err != nil {
				return err
			}
			for a := 0; a < set.Len(); a++ {
				for j := start; j < end; j++ {
					out.Set(j, a, block.At(a, j-start))
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// conditioning factorizes the design matrix and derives the report. The SVD
// is returned for reuse by the regression solve.
func conditioning(design *mat.Dense, opts Options) (ConditioningReport, *mat.SVD, error) {
	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return ConditioningReport{}, nil, fmt.Errorf("SVD of design matrix failed: %w", ErrNumericalFailure)
	}

	sv := svd.Values(nil)
	rankTol := opts.RankTol
	if rankTol <= 0 {
		rankTol = DefaultOptions().RankTol
	}

	rank := 0
	smallest := math.Inf(1)
	for _, s := range sv {
		if s > sv[0]*rankTol {
			rank++
			if s < smallest {
				smallest = s
			}
		}
	}

	cond := math.Inf(1)
	if rank > 0 && smallest > 0 {
		cond = sv[0] / smallest
	}
	if rank == len(sv) && sv[len(sv)-1] > 0 {
		cond = sv[0] / sv[len(sv)-1]
	}

	threshold := opts.CondThreshold
	if threshold <= 0 {
		threshold = DefaultOptions().CondThreshold
	}

	// Deficient means the design cannot determine every coefficient: rank
	// below the basis size (column count).
	_, cols := design.Dims()

	return ConditioningReport{
		ConditionNumber: cond,
		Rank:            rank,
		RankDeficient:   rank < cols,
		IllConditioned:  cond > threshold,
	}, &svd, nil
}

// solveSVD computes the (possibly ridge-filtered) least-squares solution
// from a factorized design matrix. Singular directions beyond the numerical
// rank are dropped, which yields the minimum-norm solution.
func solveSVD(svd *mat.SVD, values []float64, rank int, ridge float64) []float64 {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	_, m := v.Dims()
	coeffs := make([]float64, m)
	for i := 0; i < len(sv); i++ {
		if i >= rank && !(ridge > 0) {
			break // truncated: minimum-norm solution
		}
		s := sv[i]
		if !(s > 0) {
			continue
		}

		var uy float64
		for j := range values {
			uy += u.At(j, i) * values[j]
		}

		factor := uy / s
		if ridge > 0 {
			factor = uy * s / (s*s + ridge)
		}
		for a := 0; a < m; a++ {
			coeffs[a] += factor * v.At(a, i)
		}
	}

	return coeffs
}

// residuals summarizes the in-sample misfit Φc − y.
func residuals(design *mat.Dense, coeffs, values []float64) ResidualSummary {
	res := make([]float64, len(values))
	for j := range values {
		var pred float64
		for a := range coeffs {
			pred += design.At(j, a) * coeffs[a]
		}
		res[j] = pred - values[j]
	}

	var summary ResidualSummary
	if rmse, err := stats.StandardDeviationPopulation(res); err == nil {
		// population stddev of residuals around zero differs from RMSE when
		// the mean residual is non-zero; combine the two moments instead
		mean, _ := stats.Mean(res)
		summary.Mean = mean
		summary.RMSE = math.Sqrt(rmse*rmse + mean*mean)
	}
	for _, r := range res {
		if a := math.Abs(r); a > summary.MaxAbs {
			summary.MaxAbs = a
		}
	}

	return summary
}
