// Package polychaos builds orthogonal polynomial bases and Gauss-type
// quadrature rules for probability measures, and fits polynomial surrogates
// to sampled functions for uncertainty quantification.
//
// 🚀 What is polychaos?
//
//	A numerical engine that turns a description of input uncertainty into
//	quadrature rules, orthonormal bases, surrogate models and variance-based
//	sensitivity indices:
//	  • Measures: uniform, Gaussian, beta, arbitrary weights, empirical data
//	  • Recurrence coefficients: analytic families + discretized Stieltjes
//	  • Quadrature: Golub–Welsch Gauss rules, tensor grids, Smolyak sparse
//	    grids, Monte Carlo fallback
//	  • Index sets: tensor, total-order, hyperbolic-cross, anisotropic
//	  • Fitting: quadrature projection and SVD least squares, with
//	    conditioning diagnostics on every result
//	  • Statistics: mean, variance and Sobol indices straight from the
//	    orthonormal coefficients
//
// ✨ Why choose polychaos?
//
//   - Numerically careful – recurrence-based evaluation, never monomial
//     expansion; eigenproblem-based rules; SVD solves with rank reporting
//   - Deterministic – canonical index ordering, reproducible node order,
//     seeded sampling
//   - Concurrent – per-dimension generation and design-matrix assembly fan
//     out across workers; caches are safe to share
//
// Everything is organized under per-concern subpackages:
//
//	measure/    — scalar probability weights and canonical domains
//	recurrence/ — three-term recurrence coefficients + shared cache
//	indexset/   — multivariate degree enumeration under truncation rules
//	quadrature/ — 1-D Gauss rules and tensor/sparse/Monte-Carlo composition
//	basis/      — orthonormal basis and gradient evaluation
//	solver/     — projection and regression fitting, surrogates
//	moments/    — mean, variance, Sobol sensitivity indices
//
// The Engine in this package wires them together behind the narrow numeric
// API that outer layers (CLIs, plotting, optimizers) consume.
//
//	eng := polychaos.New()
//	m, _ := measure.NewUniform(-1, 1)
//	rule, _ := eng.QuadratureRule([]measure.Measure{m, m}, 3, polychaos.Sparse, indexset.TotalOrderPolicy())
//	fit, _ := eng.FitQuadrature([]measure.Measure{m, m}, indexset.TotalOrderPolicy(), 3,
//	    func(x []float64) float64 { return x[0]*x[1] + 1 })
//	stats, _ := polychaos.ComputeStatistics(fit.Coefficients)
package polychaos
