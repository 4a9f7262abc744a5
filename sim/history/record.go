// Package history captures per-step snapshots of a running simulation so
// an external tool can replay or render it after the fact.
package history

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/contagion-sim/contagion-sim/sim"
)

// Snapshot is the recorded state of the network at one step. States and
// Ages are parallel arrays indexed by node id.
type Snapshot struct {
	Time        int     `json:"time"`
	States      []uint8 `json:"states"`
	Ages        []int   `json:"ages"`
	Susceptible int     `json:"susceptible"`
	Infected    int     `json:"infected"`
	Recovered   int     `json:"recovered"`
}

// History is a full recorded run: the topology and parameter context
// needed to interpret the snapshots, plus the snapshots themselves.
type History struct {
	Topology string  `json:"topology"`
	Nodes    int     `json:"nodes"`
	Rows     int     `json:"rows,omitempty"`
	Cols     int     `json:"cols,omitempty"`
	Alpha    float64 `json:"alpha"`
	Beta     float64 `json:"beta"`
	Recovery string  `json:"recovery"`
	Seed     int64   `json:"seed"`

	Snapshots []Snapshot `json:"snapshots"`
}

// Recorder is a sim.Callback that accumulates a History. Every controls
// the sampling interval in steps; 1 records every step.
type Recorder struct {
	sim.NopCallback
	Every int

	history History
}

// NewRecorder creates a Recorder sampling every `every` steps (minimum 1).
func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every}
}

// History returns the recording so far.
func (r *Recorder) History() *History { return &r.history }

func (r *Recorder) OnStart(topo sim.Topology, p *sim.Params) {
	r.history = History{
		Topology: topo.Kind(),
		Nodes:    topo.NumNodes(),
		Alpha:    p.Alpha,
		Beta:     p.Beta,
		Recovery: p.Recovery.String(),
		Seed:     p.Seed,
	}
	if g, ok := topo.(*sim.Grid); ok {
		r.history.Rows = g.Rows()
		r.history.Cols = g.Cols()
	}
}

func (r *Recorder) OnStep(f *sim.Frame) {
	if f.Time%r.Every == 0 {
		r.append(f)
	}
}

func (r *Recorder) OnEnd(f *sim.Frame, _ *sim.Summary) {
	// Always capture the terminal frame, even off-interval.
	if n := len(r.history.Snapshots); n == 0 || r.history.Snapshots[n-1].Time != f.Time {
		r.append(f)
	}
}

func (r *Recorder) append(f *sim.Frame) {
	snap := Snapshot{
		Time:   f.Time,
		States: make([]uint8, len(f.Cells)),
		Ages:   make([]int, len(f.Cells)),
	}
	for id, c := range f.Cells {
		snap.States[id] = uint8(c.State)
		snap.Ages[id] = c.Age
	}
	snap.Susceptible, snap.Infected, snap.Recovered = f.Counts()
	r.history.Snapshots = append(r.history.Snapshots, snap)
}

// Save writes the recorded history to path as JSON.
func (r *Recorder) Save(path string) error {
	data, err := json.MarshalIndent(&r.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Load reads a history previously written by Save.
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding history %s: %w", path, err)
	}
	return &h, nil
}
