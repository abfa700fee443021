// Package recurrence derives three-term recurrence coefficients {a_k, b_k}
// for polynomial families orthogonal under a measure.Measure.
//
// The monic family π_k satisfies
//
//	π_{k+1}(x) = (x − a_k)·π_k(x) − b_k·π_{k−1}(x),  π_{-1} = 0, π_0 = 1,
//
// with b_0 defined as the total mass of the weight. For the recognized
// closed-form families the coefficients are analytic and O(n):
//
//   - Uniform  → Legendre on [-1, 1]:      a_k = 0, b_k = k²/(4k²−1)
//   - Gaussian → probabilists' Hermite:    a_k = 0, b_k = k
//   - Beta     → shifted Jacobi on [0, 1]
//
// Arbitrary measures go through a discretized Stieltjes procedure: the
// support is discretized with a Fejér quadrature mesh, and the recurrence is
// advanced one degree at a time from discrete inner products, with full
// reorthogonalization against the previously generated polynomials to hold
// round-off drift down. A non-positive b_k aborts with ErrDegenerateMeasure;
// the caller decides whether to retry with a finer mesh (Options.MeshSize).
//
// Cache is an explicit, injectable, append-only store keyed by measure
// identity and mesh; it serves prefix slices without recomputation and is
// safe for concurrent use.
package recurrence
