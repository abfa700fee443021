package quadrature

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

// Tensor composes rules into their full Cartesian product. Dimensions
// concatenate in argument order; node order is lexicographic with the first
// dimension varying slowest. Size is the product of the input sizes, so this
// is exact but exponential in dimension.
func Tensor(rules ...*Rule) (*Rule, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules to compose: %w", ErrBadRule)
	}

	dim := 0
	size := 1
	for i, r := range rules {
		if r == nil || r.Len() == 0 {
			return nil, fmt.Errorf("empty rule at position %d: %w", i, ErrBadRule)
		}
		dim += r.Dimension
		size *= r.Len()
	}

	out := &Rule{
		Nodes:     make([][]float64, size),
		Weights:   make([]float64, size),
		Dimension: dim,
	}
	for i := 0; i < size; i++ {
		node := make([]float64, 0, dim)
		weight := 1.0
		rem := i
		stride := size
		for _, r := range rules {
			stride /= r.Len()
			j := rem / stride
			rem %= stride
			node = append(node, r.Nodes[j]...)
			weight *= r.Weights[j]
		}
		out.Nodes[i] = node
		out.Weights[i] = weight
	}

	return out, nil
}

// TensorFor builds the full tensor-product Gauss rule for a list of measures
// with orders[d] points along dimension d. Per-dimension rules are generated
// concurrently and joined before composition.
func TensorFor(measures []measure.Measure, orders []int, cache *recurrence.Cache, opts recurrence.Options) (*Rule, error) {
	if len(measures) == 0 || len(measures) != len(orders) {
		return nil, fmt.Errorf("measures %d vs orders %d: %w", len(measures), len(orders), ErrBadRule)
	}

	rules := make([]*Rule, len(measures))
	var g errgroup.Group
	for d := range measures {
		g.Go(func() error {
			r, err := GaussFor(measures[d], cache, orders[d], opts)
			if err != nil {
				return fmt.Errorf("dimension %d: %w", d, err)
			}
			rules[d] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Tensor(rules...)
}
