package sim

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based checks of the invariants that must hold for any valid
// topology and any valid run.
func TestSimulationInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("grid adjacency is symmetric without loops or duplicates", prop.ForAll(
		func(rows, cols int, diagonal, wrap bool) bool {
			g, err := NewGrid(GridConfig{Rows: rows, Cols: cols, Diagonal: diagonal, Wrap: wrap})
			if err != nil {
				return rows < 3 || cols < 3 // wrap rejects narrow grids
			}
			return adjacencyWellFormed(g)
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 12),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("small-world adjacency is symmetric without loops or duplicates", prop.ForAll(
		func(nodes int, halfDegree int, rewire float64, seed int64) bool {
			degree := 2 * halfDegree
			sw, err := NewSmallWorld(SmallWorldConfig{Nodes: nodes, Degree: degree, Rewire: rewire}, swRNG(seed))
			if err != nil {
				return degree >= nodes
			}
			return adjacencyWellFormed(sw)
		},
		gen.IntRange(3, 60),
		gen.IntRange(1, 5),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	properties.Property("fixed seed gives identical final states", prop.ForAll(
		func(seed int64, alpha, beta float64) bool {
			a := finalCells(seed, alpha, beta)
			b := finalCells(seed, alpha, beta)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.Float64Range(0, 1),
		gen.Float64Range(-0.5, 2),
	))

	properties.Property("states only move forward through S->I->R", prop.ForAll(
		func(seed int64, alpha float64) bool {
			g, err := NewGrid(GridConfig{Rows: 8, Cols: 8})
			if err != nil {
				return false
			}
			s, err := NewSimulation(g, Params{Alpha: alpha, Beta: 0.1, Recovery: Geometric{Gamma: 0.3}, Seed: seed})
			if err != nil {
				return false
			}
			if err := s.SeedCenter(); err != nil {
				return false
			}
			monotone := true
			prev := append([]Cell(nil), s.Frame().Cells...)
			watcher := &transitionWatcher{check: func(f *Frame) {
				for i, c := range f.Cells {
					if c.State < prev[i].State {
						monotone = false
					}
				}
				prev = append(prev[:0], f.Cells...)
			}}
			if _, err := s.Run(watcher); err != nil {
				return false
			}
			return monotone
		},
		gen.Int64(),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}

func adjacencyWellFormed(topo Topology) bool {
	for id := 0; id < topo.NumNodes(); id++ {
		seen := make(map[int]bool)
		for _, nb := range topo.Neighbors(id) {
			if nb == id || seen[nb] {
				return false
			}
			seen[nb] = true
			reverse := false
			for _, rev := range topo.Neighbors(nb) {
				if rev == id {
					reverse = true
					break
				}
			}
			if !reverse {
				return false
			}
		}
	}
	return true
}

func finalCells(seed int64, alpha, beta float64) []Cell {
	g, err := NewGrid(GridConfig{Rows: 8, Cols: 8})
	if err != nil {
		return nil
	}
	s, err := NewSimulation(g, Params{Alpha: alpha, Beta: beta, Recovery: FixedDuration{Steps: 2}, Seed: seed, MaxSteps: 200})
	if err != nil {
		return nil
	}
	if err := s.SeedCenter(); err != nil {
		return nil
	}
	if _, err := s.Run(); err != nil {
		return nil
	}
	return s.Frame().Cells
}

// transitionWatcher runs a check function on every frame.
type transitionWatcher struct {
	NopCallback
	check func(f *Frame)
}

func (w *transitionWatcher) OnStep(f *Frame) { w.check(f) }
