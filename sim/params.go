package sim

import "fmt"

// Params are the immutable per-run epidemic parameters. They are
// validated once at controller construction; no per-step validation
// happens inside the engine.
type Params struct {
	// Alpha is the synergy-free infection probability in [0, 1]: the
	// baseline chance that a single infectious neighbor transmits to a
	// susceptible node in one step.
	Alpha float64

	// Beta is the signed synergy coefficient. Positive values model
	// collaborative (super-linear) co-infection, negative values
	// competitive (sub-linear) co-infection; zero recovers the
	// independent-neighbor baseline.
	Beta float64

	// Recovery governs how long a node stays infectious.
	Recovery RecoveryRule

	// Seed is the master seed for the run's partitioned RNG.
	Seed int64

	// MaxSteps bounds the run length; 0 means no bound (the epidemic
	// burning out is then the only terminator).
	MaxSteps int
}

func (p *Params) validate() error {
	if p.Alpha < 0 || p.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be in [0, 1], got %v", ErrConfiguration, p.Alpha)
	}
	if p.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must be non-negative, got %d", ErrConfiguration, p.MaxSteps)
	}
	return validateRecovery(p.Recovery)
}
