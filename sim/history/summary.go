package history

// Curve aggregates the epidemic curve from a recorded history.
type Curve struct {
	PeakInfected    int
	PeakTime        int
	FinalAttackRate float64
	Snapshots       int
}

// Summarize computes epidemic-curve statistics from a History. Safe for
// nil or empty histories (returns zero-value fields).
func Summarize(h *History) *Curve {
	curve := &Curve{}
	if h == nil || len(h.Snapshots) == 0 {
		return curve
	}

	curve.Snapshots = len(h.Snapshots)
	for _, snap := range h.Snapshots {
		if snap.Infected > curve.PeakInfected {
			curve.PeakInfected = snap.Infected
			curve.PeakTime = snap.Time
		}
	}

	last := h.Snapshots[len(h.Snapshots)-1]
	if h.Nodes > 0 {
		curve.FinalAttackRate = float64(last.Infected+last.Recovered) / float64(h.Nodes)
	}
	return curve
}
