// Package indexset enumerates multivariate polynomial degree combinations
// under a truncation rule.
//
// An Index is a fixed-length tuple of non-negative per-dimension degrees. A
// Set is the deterministic, duplicate-free collection of all indices of a
// given dimension admitted by a Policy at a given order:
//
//   - Tensor          — every coordinate ≤ p; size (p+1)^d.
//   - TotalOrder      — coordinate sum ≤ p; size C(p+d, d).
//   - HyperbolicCross — ∏(coordinate+1) ≤ p+1; strongly sparse.
//   - Anisotropic(w)  — weighted sum Σ w_i·α_i ≤ p with positive
//     per-dimension importance weights.
//
// Each policy is a pure predicate over an Index plus a shared bounded
// enumerator; no inheritance, no hidden state. Enumeration order is graded
// lexicographic (total degree first, then lexicographic), so coefficient
// vectors and design matrices align reproducibly across runs.
package indexset
