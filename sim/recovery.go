package sim

import "fmt"

// RecoveryRule decides when an infected node becomes Recovered. Rules are
// pure: a stochastic rule is handed its uniform draw by the engine rather
// than drawing internally, so the same rule value can be shared across
// runs without coupling their random streams.
type RecoveryRule interface {
	// Stochastic reports whether Recovers consumes a uniform draw. The
	// engine uses this to keep draw consumption deterministic.
	Stochastic() bool
	// Recovers reports whether a node that has been infectious for age
	// completed steps recovers on the step now being computed. draw is a
	// uniform [0,1) variate for stochastic rules and ignored otherwise.
	Recovers(age int, draw float64) bool
	String() string
}

// FixedDuration recovers a node after exactly Steps infectious steps: a
// node infected at step t is Recovered in the frame at step t+Steps.
type FixedDuration struct {
	Steps int
}

func (FixedDuration) Stochastic() bool { return false }

func (d FixedDuration) Recovers(age int, _ float64) bool { return age+1 >= d.Steps }

func (d FixedDuration) String() string { return fmt.Sprintf("fixed(%d)", d.Steps) }

// Geometric recovers a node with per-step probability Gamma, giving
// geometrically distributed infectious durations.
type Geometric struct {
	Gamma float64
}

func (Geometric) Stochastic() bool { return true }

func (g Geometric) Recovers(_ int, draw float64) bool { return draw < g.Gamma }

func (g Geometric) String() string { return fmt.Sprintf("geometric(%v)", g.Gamma) }

// validateRecovery rejects rules whose parameters leave a node infectious
// forever; guaranteed eventual recovery is what makes every finite run
// terminate.
func validateRecovery(r RecoveryRule) error {
	switch rule := r.(type) {
	case nil:
		return fmt.Errorf("%w: recovery rule is required", ErrConfiguration)
	case FixedDuration:
		if rule.Steps < 1 {
			return fmt.Errorf("%w: fixed recovery duration must be >= 1 step, got %d", ErrConfiguration, rule.Steps)
		}
	case Geometric:
		if rule.Gamma <= 0 || rule.Gamma > 1 {
			return fmt.Errorf("%w: geometric recovery probability must be in (0, 1], got %v", ErrConfiguration, rule.Gamma)
		}
	}
	return nil
}
