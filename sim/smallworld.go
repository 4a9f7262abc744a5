package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// SmallWorldConfig describes a Watts-Strogatz small-world topology.
type SmallWorldConfig struct {
	// Nodes is the number of nodes on the ring.
	Nodes int
	// Degree is the mean degree of the initial ring lattice. Must be even
	// and < Nodes.
	Degree int
	// Rewire is the per-edge rewiring probability in [0, 1].
	Rewire float64
}

// SmallWorld is a Watts-Strogatz network: a ring lattice whose edges have
// each been rewired with some probability to a uniformly random node.
type SmallWorld struct {
	n   int
	adj [][]int
}

// NewSmallWorld builds a small-world topology. Every rewiring draw comes
// from rng, consumed in a fixed edge order, so the adjacency structure is
// fully determined by the config and the generator's seed.
func NewSmallWorld(cfg SmallWorldConfig, rng *rand.Rand) (*SmallWorld, error) {
	if cfg.Nodes <= 0 {
		return nil, fmt.Errorf("%w: small-world node count must be positive, got %d", ErrConfiguration, cfg.Nodes)
	}
	if cfg.Degree < 2 || cfg.Degree%2 != 0 {
		return nil, fmt.Errorf("%w: small-world mean degree must be a positive even number, got %d", ErrConfiguration, cfg.Degree)
	}
	if cfg.Degree >= cfg.Nodes {
		return nil, fmt.Errorf("%w: small-world mean degree %d must be < node count %d", ErrConfiguration, cfg.Degree, cfg.Nodes)
	}
	if cfg.Rewire < 0 || cfg.Rewire > 1 {
		return nil, fmt.Errorf("%w: rewiring probability must be in [0, 1], got %v", ErrConfiguration, cfg.Rewire)
	}

	n := cfg.Nodes
	edges := make([]map[int]bool, n)
	for i := range edges {
		edges[i] = make(map[int]bool, cfg.Degree)
	}
	connect := func(a, b int) {
		edges[a][b] = true
		edges[b][a] = true
	}
	disconnect := func(a, b int) {
		delete(edges[a], b)
		delete(edges[b], a)
	}

	// Ring lattice: each node links to its Degree/2 clockwise successors.
	for i := 0; i < n; i++ {
		for j := 1; j <= cfg.Degree/2; j++ {
			connect(i, (i+j)%n)
		}
	}

	// Rewire lattice edges in the canonical Watts-Strogatz order: one
	// pass per lattice distance, nodes in id order within each pass.
	for j := 1; j <= cfg.Degree/2; j++ {
		for i := 0; i < n; i++ {
			old := (i + j) % n
			if !edges[i][old] {
				continue // already rewired away by an earlier pass
			}
			if rng.Float64() >= cfg.Rewire {
				continue
			}
			target := -1
			for attempt := 0; attempt < 8*n; attempt++ {
				t := rng.Intn(n)
				if t != i && !edges[i][t] {
					target = t
					break
				}
			}
			if target < 0 {
				continue // node is saturated, keep the lattice edge
			}
			disconnect(i, old)
			connect(i, target)
		}
	}

	sw := &SmallWorld{n: n, adj: make([][]int, n)}
	for i, set := range edges {
		nbrs := make([]int, 0, len(set))
		for b := range set {
			nbrs = append(nbrs, b)
		}
		sort.Ints(nbrs)
		sw.adj[i] = nbrs
	}
	return sw, nil
}

func (s *SmallWorld) NumNodes() int          { return s.n }
func (s *SmallWorld) Neighbors(id int) []int { return s.adj[id] }
func (s *SmallWorld) Kind() string           { return "smallworld" }
