package quadrature

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/polychaos/indexset"
	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

// mergeTol is the coordinate tolerance within which sparse-grid nodes from
// different component rules are considered the same point and their weights
// merged instead of double-counted.
const mergeTol = 1e-10

// Generator supplies the 1-D rule of a requested size along one dimension.
// Sparse calls it with points = level+1 for each level appearing in the
// index set.
type Generator func(dim, points int) (*Rule, error)

// Sparse builds the Smolyak sparse-grid rule driven by a level index set:
// for every level tuple ℓ in the set with a non-zero combination coefficient
//
//	c_ℓ = Σ_{e ∈ {0,1}^d, ℓ+e ∈ set} (−1)^{|e|}
//
// the tensor product of the component rules (ℓ_d+1 points along dimension d)
// enters the sum weighted by c_ℓ. This telescopes the difference-rule form
// of the Smolyak formula, so coefficients may be negative, and with them
// final weights; that is a property of sparse combination, not an error.
// Coinciding nodes are merged within a tolerance.
func Sparse(set *indexset.Set, gen Generator) (*Rule, error) {
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("nil or empty index set: %w", ErrBadRule)
	}

	dim := set.Dimension()
	type contribution struct {
		coeff float64
		rule  *Rule
	}
	contributions := make([]contribution, 0, set.Len())

	for i := 0; i < set.Len(); i++ {
		level := set.At(i)
		coeff := combinationCoefficient(set, level)
		if coeff == 0 {
			continue
		}

		parts := make([]*Rule, dim)
		for d := 0; d < dim; d++ {
			r, err := gen(d, level[d]+1)
			if err != nil {
				return nil, fmt.Errorf("level %v dimension %d: %w", level, d, err)
			}
			parts[d] = r
		}
		product, err := Tensor(parts...)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution{coeff: float64(coeff), rule: product})
	}

	// Merge all contributions into one node set, summing weights of nodes
	// that coincide within mergeTol.
	merged := make(map[string]int)
	out := &Rule{Dimension: dim}
	for _, c := range contributions {
		for i, node := range c.rule.Nodes {
			key := nodeKey(node)
			if at, ok := merged[key]; ok {
				out.Weights[at] += c.coeff * c.rule.Weights[i]

				continue
			}
			merged[key] = len(out.Nodes)
			out.Nodes = append(out.Nodes, node)
			out.Weights = append(out.Weights, c.coeff*c.rule.Weights[i])
		}
	}

	sortRule(out)

	return out, nil
}

// combinationCoefficient evaluates the Smolyak coefficient of a level tuple
// by membership of its {0,1}-shifted neighbors, valid for any
// downward-closed index set.
func combinationCoefficient(set *indexset.Set, level indexset.Index) int {
	dim := len(level)
	coeff := 0
	shifted := make(indexset.Index, dim)
	for mask := 0; mask < 1<<dim; mask++ {
		copy(shifted, level)
		ones := 0
		for d := 0; d < dim; d++ {
			if mask&(1<<d) != 0 {
				shifted[d]++
				ones++
			}
		}
		if _, ok := set.Position(shifted); ok {
			if ones%2 == 0 {
				coeff++
			} else {
				coeff--
			}
		}
	}

	return coeff
}

// SparseFor builds the Smolyak rule for per-dimension measures, generating
// the component Gauss rules from cached recurrence coefficients. Component
// rules for all levels along every dimension are prepared concurrently.
func SparseFor(measures []measure.Measure, set *indexset.Set, cache *recurrence.Cache, opts recurrence.Options) (*Rule, error) {
	if set == nil || len(measures) != set.Dimension() {
		return nil, fmt.Errorf("measures %d vs set dimension: %w", len(measures), ErrBadRule)
	}

	// Pre-build every (dimension, size) component rule once, in parallel.
	maxes := set.MaxDegrees()
	components := make([][]*Rule, len(measures))
	var g errgroup.Group
	for d := range measures {
		components[d] = make([]*Rule, maxes[d]+1)
		for lvl := 0; lvl <= maxes[d]; lvl++ {
			g.Go(func() error {
				r, err := GaussFor(measures[d], cache, lvl+1, opts)
				if err != nil {
					return fmt.Errorf("dimension %d size %d: %w", d, lvl+1, err)
				}
				components[d][lvl] = r

				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Sparse(set, func(dim, points int) (*Rule, error) {
		return components[dim][points-1], nil
	})
}

// nodeKey snaps coordinates to the merge-tolerance grid.
func nodeKey(node []float64) string {
	var b strings.Builder
	for _, x := range node {
		b.WriteString(strconv.FormatInt(int64(math.Round(x/mergeTol)), 36))
		b.WriteByte('|')
	}

	return b.String()
}

// sortRule orders nodes lexicographically by coordinates, carrying weights
// along, so sparse rules are reproducible across runs.
func sortRule(r *Rule) {
	order := make([]int, len(r.Nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := r.Nodes[order[i]], r.Nodes[order[j]]
		for d := range a {
			if a[d] != b[d] {
				return a[d] < b[d]
			}
		}

		return false
	})

	nodes := make([][]float64, len(order))
	weights := make([]float64, len(order))
	for i, at := range order {
		nodes[i] = r.Nodes[at]
		weights[i] = r.Weights[at]
	}
	r.Nodes = nodes
	r.Weights = weights
}
