package recurrence

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/polychaos/measure"
)

// Cache is a process-wide, read-mostly store of recurrence coefficients
// keyed by (measure identity, mesh size). It is append-only: a run of n pairs
// supersedes any shorter run for the same key, and recomputation for
// identical keys is idempotent, so concurrent writers can never contradict
// each other. Inject a *Cache explicitly instead of relying on package-level
// state.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Coefficients
}

// NewCache returns an empty coefficient cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Coefficients)}
}

// Generate returns n coefficient pairs for m, serving a prefix of a cached
// longer run when available and computing (then storing) otherwise.
func (c *Cache) Generate(m measure.Measure, n int, opts Options) (Coefficients, error) {
	if n < 1 {
		return Coefficients{}, fmt.Errorf("n=%d: %w", n, ErrBadOrder)
	}
	key := fmt.Sprintf("%s/mesh=%d", m.Key(), opts.MeshSize)

	c.mu.RLock()
	hit, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && hit.Order() >= n {
		return hit.Truncate(n), nil
	}

	coeffs, err := Generate(m, n, opts)
	if err != nil {
		return Coefficients{}, err
	}

	c.mu.Lock()
	if prev, ok := c.entries[key]; !ok || prev.Order() < coeffs.Order() {
		c.entries[key] = coeffs
	}
	c.mu.Unlock()

	return coeffs.Truncate(n), nil
}

// Len reports the number of cached coefficient runs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// GenerateAll computes coefficients for several measures concurrently, one
// worker per dimension, joining before returning. orders[d] pairs are
// generated for measures[d]. All results come from (and populate) the cache.
func GenerateAll(cache *Cache, measures []measure.Measure, orders []int, opts Options) ([]Coefficients, error) {
	if len(measures) != len(orders) {
		return nil, fmt.Errorf("measures %d vs orders %d: %w", len(measures), len(orders), ErrBadOrder)
	}

	out := make([]Coefficients, len(measures))
	var g errgroup.Group
	for d := range measures {
		g.Go(func() error {
			coeffs, err := cache.Generate(measures[d], orders[d], opts)
			if err != nil {
				return fmt.Errorf("dimension %d: %w", d, err)
			}
			out[d] = coeffs

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
