package quadrature

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/polychaos/measure"
)

// MonteCarlo builds an equal-weight random rule with n points drawn from the
// product of the given measures, the pragmatic fallback when the dimension
// makes structured grids uneconomical. The seed makes the rule reproducible;
// node order is the sampling order.
func MonteCarlo(measures []measure.Measure, n int, seed uint64) (*Rule, error) {
	if len(measures) == 0 || n < 1 {
		return nil, fmt.Errorf("%d measures, %d points: %w", len(measures), n, ErrBadRule)
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	out := &Rule{
		Nodes:     make([][]float64, n),
		Weights:   make([]float64, n),
		Dimension: len(measures),
	}
	w := 1 / float64(n)
	for i := 0; i < n; i++ {
		node := make([]float64, len(measures))
		for d, m := range measures {
			node[d] = m.Sample(src)
		}
		out.Nodes[i] = node
		out.Weights[i] = w
	}

	return out, nil
}
