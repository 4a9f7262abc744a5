package track

import (
	"github.com/sirupsen/logrus"

	"github.com/contagion-sim/contagion-sim/sim"
)

// Callback persists a run to a Store as it executes: parameters at
// start, optional per-step histories, and the summary at termination.
// Store errors are logged rather than propagated so that a broken
// tracking backend can never corrupt or abort a simulation.
type Callback struct {
	sim.NopCallback

	store      *Store
	experiment string
	logHistory bool

	runID string
}

// NewCallback creates a tracking callback writing to store under the
// given experiment name. logHistory additionally records per-step
// compartment counts.
func NewCallback(store *Store, experiment string, logHistory bool) *Callback {
	return &Callback{store: store, experiment: experiment, logHistory: logHistory}
}

// RunID returns the store id of the tracked run, empty before OnStart.
func (c *Callback) RunID() string { return c.runID }

func (c *Callback) OnStart(topo sim.Topology, p *sim.Params) {
	id, err := c.store.CreateRun(c.experiment, topo, p)
	if err != nil {
		logrus.Errorf("track: %v", err)
		return
	}
	c.runID = id
}

func (c *Callback) OnStep(f *sim.Frame) {
	if !c.logHistory || c.runID == "" {
		return
	}
	if err := c.store.AppendStep(c.runID, f); err != nil {
		logrus.Errorf("track: %v", err)
	}
}

func (c *Callback) OnEnd(_ *sim.Frame, summary *sim.Summary) {
	if c.runID == "" {
		return
	}
	if err := c.store.FinishRun(c.runID, summary); err != nil {
		logrus.Errorf("track: %v", err)
	}
}
