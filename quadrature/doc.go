// Package quadrature builds Gauss-type integration rules from recurrence
// coefficients and composes one-dimensional rules into multidimensional ones.
//
// One dimension (Golub–Welsch): the n×n symmetric tridiagonal Jacobi matrix
// assembled from recurrence coefficients is eigendecomposed; eigenvalues are
// the nodes, and the squared first components of the normalized eigenvectors,
// scaled by the measure mass, are the weights. An n-point rule integrates
// polynomials up to degree 2n−1 exactly under the weight.
//
// Multiple dimensions:
//
//   - Tensor      — full Cartesian product of per-dimension rules. Exact,
//     exponential in dimension.
//   - Sparse      — Smolyak combination driven by an indexset.Set:
//     tensor products of component rules weighted by combination
//     coefficients, with coinciding nodes merged (weights summed) within a
//     tolerance. Weights may legitimately be negative; see
//     Rule.HasNegativeWeights.
//   - MonteCarlo  — equal-weight random rule sampled from the measures, a
//     pragmatic fallback when the dimension defeats structured grids.
//
// Rules built for a measure map canonical-domain nodes back onto the
// measure's physical support, so callers always see physical coordinates.
package quadrature
