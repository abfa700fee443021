// Package solver fits orthonormal polynomial expansions to sampled function
// values and reports the conditioning of every fit.
//
// Two fitting modes:
//
//   - Quadrature projection (Fit, FitFunction) — each coefficient is the
//     weighted discrete inner product of the function with one basis
//     function over an integration rule. Unbiased when the rule is exact to
//     at least twice the basis degree.
//   - Regression (FitRegression) — a design matrix of basis evaluations at
//     scattered sample points is solved by SVD least squares; the
//     minimum-norm solution is chosen when the matrix is rank-deficient,
//     and an optional ridge parameter lifts the sample-count restriction.
//
// Every Result carries a ConditioningReport derived from the design
// matrix's singular values. Crossing the condition-number threshold is a
// warning flag on the report, never a failure: precondition violations
// (dimension mismatch, too few samples without ridge) and a broken
// factorization (ErrNumericalFailure) are the only aborts.
//
// The resulting CoefficientVector is ordered exactly as its index set; a
// Surrogate wraps it for pointwise value and gradient evaluation.
package solver
