// Package measure describes scalar probability weights for orthogonal
// polynomial construction: the support of the weight, its density, and the
// canonical domain the associated polynomial family lives on.
//
// A Measure is a small immutable value. Four kinds are supported:
//
//   - Uniform   — constant density on a finite interval [lower, upper];
//     canonical domain [-1, 1] (Legendre family).
//   - Gaussian  — normal density with mean μ and spread σ on (-∞, ∞);
//     canonical domain is the standardized variable (Hermite family).
//   - Beta      — Beta(α, β) density on a finite interval; canonical
//     domain [0, 1] (shifted Jacobi family).
//   - Arbitrary — caller-supplied non-negative weight function on a finite
//     interval; no closed-form family, handled numerically downstream.
//
// FromSamples builds an Arbitrary measure from observed data using a
// Gaussian-kernel density with Silverman bandwidth, so empirical inputs can
// feed the same pipeline as analytic ones.
//
// All measures are probability measures: densities integrate to one over the
// support (Arbitrary weights may be unnormalized; downstream recurrence
// generation normalizes through the zeroth moment).
//
// Canonical mapping:
//
//	m, _ := measure.NewUniform(0, 10)
//	t := m.ToCanonical(7.5) // 0.5 on [-1,1]
//	x := m.FromCanonical(t) // 7.5 again
//
// Measures are safe for concurrent use and usable as cache keys via Key().
package measure
