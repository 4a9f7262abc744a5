package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulation owns one full run: the topology, the evolving frame, and
// the step loop. It is single-use; build a fresh Topology + Simulation
// pair for every run of a batch.
//
// Not safe for concurrent use. A run is sequential by design: no two
// callers may advance the same Simulation.
type Simulation struct {
	topo   Topology
	params Params
	rng    *PartitionedRNG

	frame  *Frame
	seeded bool
	done   bool
}

// NewSimulation validates params and prepares a fully susceptible
// network at time 0.
func NewSimulation(topo Topology, params Params) (*Simulation, error) {
	if topo == nil || topo.NumNodes() == 0 {
		return nil, fmt.Errorf("%w: topology must have at least one node", ErrConfiguration)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		topo:   topo,
		params: params,
		rng:    NewPartitionedRNG(NewSimulationKey(params.Seed)),
		frame:  NewFrame(topo.NumNodes()),
	}, nil
}

// Topology returns the network the simulation runs over.
func (s *Simulation) Topology() Topology { return s.topo }

// Params returns a copy of the run parameters.
func (s *Simulation) Params() Params { return s.params }

// Frame returns the current state of the network.
func (s *Simulation) Frame() *Frame { return s.frame }

// Seed marks the given nodes as initially infected. It may be called
// repeatedly to build up a seed set, but only before Run.
func (s *Simulation) Seed(ids ...int) error {
	if s.done {
		return fmt.Errorf("%w: cannot reseed a terminated simulation", ErrAlreadyRun)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no seed nodes given", ErrSeed)
	}
	for _, id := range ids {
		if id < 0 || id >= s.topo.NumNodes() {
			return fmt.Errorf("%w: node %d does not exist in %s topology of %d nodes", ErrSeed, id, s.topo.Kind(), s.topo.NumNodes())
		}
	}
	for _, id := range ids {
		s.frame.Cells[id] = Cell{State: Infected, Age: 0}
	}
	s.seeded = true
	return nil
}

// SeedCenter seeds the conventional central node: the middle cell of a
// grid, or node N/2 of a ring-based topology.
func (s *Simulation) SeedCenter() error {
	if g, ok := s.topo.(*Grid); ok {
		return s.Seed(g.Center())
	}
	return s.Seed(s.topo.NumNodes() / 2)
}

// Run drives the transition engine until the epidemic burns out, the
// MaxSteps bound is hit, or a callback requests an early stop. The
// summary is returned and also delivered through OnEnd exactly once.
// A Simulation can run only once; a second call fails with ErrAlreadyRun.
func (s *Simulation) Run(callbacks ...Callback) (*Summary, error) {
	if s.done {
		return nil, fmt.Errorf("%w: construct a fresh simulation per run", ErrAlreadyRun)
	}
	if !s.seeded {
		return nil, fmt.Errorf("%w: cannot run with no infected nodes", ErrSeed)
	}
	s.done = true

	cb := callbackGroup(callbacks)
	cb.OnStart(s.topo, &s.params)
	logrus.Debugf("run started: %s topology, %d nodes, alpha=%v beta=%v recovery=%s seed=%d",
		s.topo.Kind(), s.topo.NumNodes(), s.params.Alpha, s.params.Beta, s.params.Recovery, s.params.Seed)

	rng := s.rng.ForSubsystem(SubsystemTransitions)
	extinct := false
	for {
		if s.frame.InfectedCount() == 0 {
			extinct = true
			break
		}
		if s.params.MaxSteps > 0 && s.frame.Time >= s.params.MaxSteps {
			break
		}
		s.frame = step(s.topo, s.frame, &s.params, rng)
		cb.OnStep(s.frame)
		if cb.ShouldStop(s.frame) {
			break
		}
	}

	summary := s.summarize(extinct)
	cb.OnEnd(s.frame, summary)
	logrus.Debugf("run finished: %d steps, %d/%d ever infected, extinct=%v",
		summary.Steps, summary.EverInfected, s.topo.NumNodes(), summary.Extinct)
	return summary, nil
}

func (s *Simulation) summarize(extinct bool) *Summary {
	susceptible, infected, recovered := s.frame.Counts()
	ever := s.frame.EverInfected()
	summary := &Summary{
		Steps:                s.frame.Time,
		Susceptible:          susceptible,
		Infected:             infected,
		Recovered:            recovered,
		EverInfected:         ever,
		EverInfectedFraction: float64(ever) / float64(s.topo.NumNodes()),
		Extinct:              extinct,
	}
	if g, ok := s.topo.(*Grid); ok {
		summary.EpidemicClass = GridSpanClass(g, s.frame)
	}
	return summary
}
