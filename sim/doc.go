// Package sim provides the core engine for stochastic SIR epidemics on
// contact networks with synergistic co-infection effects.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - topology.go: the Topology contract and the grid network builder
//   - model.go: the per-cell transition rule and the synergy-weighted
//     infection probability
//   - simulation.go: the controller that seeds the network, drives the
//     step loop, and fans out callbacks
//
// # Architecture
//
// A run is built from three immutable inputs: a Topology (grid or
// small-world, see smallworld.go), a Params value (infection rate alpha,
// synergy coefficient beta, a RecoveryRule, master seed), and a seed set
// of initially infected nodes. The transition engine (engine.go) advances
// the whole network one synchronous step at a time: every cell's next
// state is computed from the same prior Frame, so node visit order never
// affects the outcome. All randomness flows from one PartitionedRNG
// (rng.go) derived from the master seed and is consumed in fixed node
// order, which makes whole runs bit-for-bit reproducible.
//
// Peripheral concerns are external collaborators behind the Callback
// interface (callback.go):
//   - sim/history: per-step snapshot capture for later rendering
//   - sim/track: experiment persistence to SQLite
//   - sim/sweep: parameter-grid batch execution
//
// The engine and controller never reach into those packages directly.
package sim
