// Package basis evaluates orthonormal polynomial basis functions and their
// gradients at arbitrary points, directly from three-term recurrence
// coefficients.
//
// Evaluation never expands polynomials to monomial form: a monomial
// (Vandermonde) representation is severely ill-conditioned already at
// moderate degree, while the forward recurrence
//
//	√b_{k+1}·φ_{k+1}(x) = (x − a_k)·φ_k(x) − √b_k·φ_{k−1}(x)
//
// is numerically stable. Derivatives follow the analogous recurrence, not
// finite differences.
//
// Multivariate basis functions are per-dimension products (tensor-product
// construction), valid because measures are separable: the multivariate
// weight is a product of the per-dimension weights. Non-separable weights
// are out of scope.
package basis
