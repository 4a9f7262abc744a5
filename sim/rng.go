package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible run. Two simulations
// with the same SimulationKey and identical configuration MUST produce
// bit-for-bit identical state sequences.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemTopology is the RNG subsystem for randomized topology
	// construction (small-world rewiring).
	SubsystemTopology = "topology"

	// SubsystemTransitions is the RNG subsystem for per-step infection
	// and recovery draws.
	SubsystemTransitions = "transitions"
)

// PartitionedRNG provides deterministic, isolated RNG streams per
// subsystem, each seeded as masterSeed XOR fnv1a64(subsystemName). The
// isolation means the number of draws the topology builder consumes can
// never shift the transition engine's stream.
//
// Thread-safety: NOT thread-safe. A run is single-threaded by design;
// concurrent batch runs must each own their own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
