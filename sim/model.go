package sim

import "math"

// synergyExposure is the effective exposure f(k, beta) of a susceptible
// node with k infectious neighbors: k scaled by a per-pair synergy term,
//
//	f(k, beta) = k * (1 + beta*(k-1))
//
// clamped at zero. f(k, 0) = k recovers the independent-neighbor
// baseline; for k >= 2 the exposure is strictly increasing in beta
// (collaborative infection) and strictly decreasing for negative beta
// (competitive infection) until the clamp. A single neighbor is never
// modified by synergy: f(1, beta) = 1 for all beta.
func synergyExposure(k int, beta float64) float64 {
	if k <= 0 {
		return 0
	}
	f := float64(k) * (1 + beta*float64(k-1))
	if f < 0 {
		return 0
	}
	return f
}

// InfectionProbability is the chance that a susceptible node with k
// infectious neighbors becomes infected in one step:
//
//	P = 1 - (1-alpha)^f(k, beta)
//
// Exactly 0 for k == 0 (no spontaneous infection) and exactly 1 for
// alpha == 1 with any exposure.
func InfectionProbability(alpha, beta float64, k int) float64 {
	f := synergyExposure(k, beta)
	if f == 0 || alpha == 0 {
		return 0
	}
	if alpha == 1 {
		return 1
	}
	return 1 - math.Pow(1-alpha, f)
}

// nextCell is the pure per-node transition rule: given a cell's prior
// state, its infectious-neighbor count from the same prior frame, and
// the run parameters, produce its next state. draw is the node's uniform
// [0,1) variate for this step; the engine passes NaN when the decision
// is deterministic and no draw was consumed.
func nextCell(c Cell, k int, p *Params, draw float64) Cell {
	switch c.State {
	case Susceptible:
		if k > 0 && draw < InfectionProbability(p.Alpha, p.Beta, k) {
			return Cell{State: Infected, Age: 0}
		}
		return c
	case Infected:
		if p.Recovery.Recovers(c.Age, draw) {
			return Cell{State: Recovered}
		}
		return Cell{State: Infected, Age: c.Age + 1}
	default: // Recovered is terminal
		return c
	}
}
