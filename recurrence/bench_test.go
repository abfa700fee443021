package recurrence_test

import (
	"testing"

	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

// benchmarkStieltjes runs the discretized Stieltjes procedure at the given
// order and mesh, failing on degeneracy.
func benchmarkStieltjes(b *testing.B, order, mesh int) {
	m, err := measure.NewArbitrary(-1, 1, func(x float64) float64 { return 1 - x*x })
	if err != nil {
		b.Fatalf("measure: %v", err)
	}
	opts := recurrence.Options{MeshSize: mesh}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := recurrence.Generate(m, order, opts); err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}

// BenchmarkStieltjes_Order10 measures a small expansion on the default-scale mesh.
func BenchmarkStieltjes_Order10(b *testing.B) { benchmarkStieltjes(b, 10, 250) }

// BenchmarkStieltjes_Order30 measures a deep expansion on a fine mesh.
func BenchmarkStieltjes_Order30(b *testing.B) { benchmarkStieltjes(b, 30, 1000) }

// BenchmarkClosedForm_Legendre measures the analytic path for contrast.
func BenchmarkClosedForm_Legendre(b *testing.B) {
	m, err := measure.NewUniform(-1, 1)
	if err != nil {
		b.Fatalf("measure: %v", err)
	}
	opts := recurrence.DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := recurrence.Generate(m, 30, opts); err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}
