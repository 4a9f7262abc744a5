package sim

// Callback is the notification contract between the core and its
// external collaborators (history capture, experiment tracking,
// rendering). Implementations must not mutate the frames they receive.
type Callback interface {
	// OnStart fires once before the first step.
	OnStart(topo Topology, p *Params)
	// OnStep fires after every completed step.
	OnStep(f *Frame)
	// ShouldStop is polled after OnStep; returning true ends the run
	// early without corrupting state.
	ShouldStop(f *Frame) bool
	// OnEnd fires exactly once at termination, whatever the cause.
	OnEnd(f *Frame, summary *Summary)
}

// NopCallback is a Callback that does nothing. Embed it to implement
// only the hooks you care about.
type NopCallback struct{}

func (NopCallback) OnStart(Topology, *Params) {}
func (NopCallback) OnStep(*Frame)             {}
func (NopCallback) ShouldStop(*Frame) bool    { return false }
func (NopCallback) OnEnd(*Frame, *Summary)    {}

// callbackGroup fans every notification out to a list of callbacks.
type callbackGroup []Callback

func (g callbackGroup) OnStart(topo Topology, p *Params) {
	for _, cb := range g {
		cb.OnStart(topo, p)
	}
}

func (g callbackGroup) OnStep(f *Frame) {
	for _, cb := range g {
		cb.OnStep(f)
	}
}

func (g callbackGroup) ShouldStop(f *Frame) bool {
	stop := false
	for _, cb := range g {
		// Poll every callback so none misses the frame.
		if cb.ShouldStop(f) {
			stop = true
		}
	}
	return stop
}

func (g callbackGroup) OnEnd(f *Frame, s *Summary) {
	for _, cb := range g {
		cb.OnEnd(f, s)
	}
}
