package sim

import (
	"math"
	"math/rand"
)

// step advances the whole network by one synchronous step: every cell's
// next state is derived from the same prior frame, so the result is
// independent of visit order. Draws are nevertheless consumed in fixed
// node order (0..N-1), exactly one per stochastic decision, which is what
// makes a seeded run reproducible.
func step(topo Topology, prev *Frame, p *Params, rng *rand.Rand) *Frame {
	next := &Frame{
		Time:  prev.Time + 1,
		Cells: make([]Cell, len(prev.Cells)),
	}

	for id := range prev.Cells {
		c := prev.Cells[id]
		if c.State == Recovered {
			next.Cells[id] = c
			continue
		}

		k := 0
		if c.State == Susceptible {
			for _, nb := range topo.Neighbors(id) {
				if prev.Cells[nb].State == Infected {
					k++
				}
			}
		}

		draw := math.NaN()
		if stochasticDecision(c, k, p) {
			draw = rng.Float64()
		}
		next.Cells[id] = nextCell(c, k, p, draw)
	}
	return next
}

// stochasticDecision reports whether the cell's transition this step
// needs a uniform draw. A susceptible cell with no infectious neighbors
// has infection probability exactly 0 and consumes nothing; a
// deterministic recovery rule consumes nothing.
func stochasticDecision(c Cell, k int, p *Params) bool {
	switch c.State {
	case Susceptible:
		return k > 0
	case Infected:
		return p.Recovery.Stochastic()
	default:
		return false
	}
}
