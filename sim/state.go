package sim

import "fmt"

// State is the epidemic compartment of a single node.
// Transitions only ever move forward: Susceptible -> Infected -> Recovered.
type State uint8

const (
	// Susceptible nodes can be infected by infectious neighbors.
	Susceptible State = iota
	// Infected nodes are infectious to their neighbors until they recover.
	Infected
	// Recovered is terminal: non-infectious and non-susceptible.
	Recovered
)

func (s State) String() string {
	switch s {
	case Susceptible:
		return "S"
	case Infected:
		return "I"
	case Recovered:
		return "R"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Cell is the full per-node epidemic state. Age counts completed steps
// spent in the Infected state and is meaningless otherwise.
type Cell struct {
	State State
	Age   int
}

// Frame is the state of the whole network at one instant. Frames are
// immutable once produced: the engine always builds a new Frame from the
// prior one rather than mutating in place, so a step is order-independent
// and a callback may retain any Frame it was handed.
type Frame struct {
	// Time is the step counter, starting at 0 for the seeded state.
	Time int
	// Cells holds one entry per topology node, indexed by node id.
	Cells []Cell
}

// NewFrame returns the time-zero frame with every node Susceptible.
func NewFrame(numNodes int) *Frame {
	return &Frame{Cells: make([]Cell, numNodes)}
}

// Counts returns the number of nodes in each compartment.
func (f *Frame) Counts() (susceptible, infected, recovered int) {
	for _, c := range f.Cells {
		switch c.State {
		case Susceptible:
			susceptible++
		case Infected:
			infected++
		case Recovered:
			recovered++
		}
	}
	return susceptible, infected, recovered
}

// InfectedCount returns the number of currently infectious nodes.
func (f *Frame) InfectedCount() int {
	n := 0
	for _, c := range f.Cells {
		if c.State == Infected {
			n++
		}
	}
	return n
}

// EverInfected returns the number of nodes that have ever been infected.
// A node that has left Susceptible can never return to it, so this is
// simply the count of non-Susceptible cells.
func (f *Frame) EverInfected() int {
	n := 0
	for _, c := range f.Cells {
		if c.State != Susceptible {
			n++
		}
	}
	return n
}
