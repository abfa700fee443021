// Package moments derives distributional statistics of a fitted expansion
// directly from its orthonormal coefficients; no further integration is
// needed, by orthonormality of the basis:
//
//	mean     = c₀                          (zero multi-index coefficient)
//	variance = Σ_{α≠0} c_α²
//	S_i      = Σ_{α active only in i} c_α² / variance   (first-order Sobol)
//	ST_i     = Σ_{α active in i}      c_α² / variance   (total Sobol)
//
// A constant function has zero variance and undefined sensitivities; that
// case aborts with ErrDegenerateVariance.
package moments
