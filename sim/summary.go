package sim

import "fmt"

// Summary is the fixed-shape record a run produces at termination.
// Formatting and persistence of anything beyond Print are the callback
// implementors' concern.
type Summary struct {
	// Steps is the total number of steps executed.
	Steps int

	// Final compartment counts; they always sum to the node count.
	Susceptible int
	Infected    int
	Recovered   int

	// EverInfected counts nodes that were infected at any point.
	EverInfected         int
	EverInfectedFraction float64

	// Extinct is true when the run ended because no infected nodes
	// remained, false when it was cut off by MaxSteps or a callback.
	Extinct bool

	// EpidemicClass is the grid spanning classification; empty for
	// non-grid topologies.
	EpidemicClass EpidemicClass
}

// Print displays the summary at the end of a run.
func (s *Summary) Print() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Steps                : %d\n", s.Steps)
	fmt.Printf("Susceptible          : %d\n", s.Susceptible)
	fmt.Printf("Infected             : %d\n", s.Infected)
	fmt.Printf("Recovered            : %d\n", s.Recovered)
	fmt.Printf("Ever Infected        : %d (%.2f%%)\n", s.EverInfected, 100*s.EverInfectedFraction)
	fmt.Printf("Burned Out           : %v\n", s.Extinct)
	if s.EpidemicClass != "" {
		fmt.Printf("Epidemic Class       : %s\n", s.EpidemicClass)
	}
}
