package sim

import "errors"

// Sentinel errors for the three misuse classes the core can reject. All
// are raised synchronously at the point of misuse, never mid-step; wrap
// with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	// ErrConfiguration marks invalid topology or parameter domains,
	// detected at construction time.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrSeed marks a seeding request that references a node outside the
	// topology, or a run attempted with no seeded infection.
	ErrSeed = errors.New("invalid seed")

	// ErrAlreadyRun marks an attempt to reuse a terminated controller. A
	// fresh Topology + Simulation pair is required per run.
	ErrAlreadyRun = errors.New("simulation already run")
)
