package sim

// EpidemicClass classifies how far a grid epidemic has spanned the
// lattice: whether every row and/or every column has ever held an
// infected cell.
type EpidemicClass string

const (
	// EpidemicNone means the outbreak spans neither axis.
	EpidemicNone EpidemicClass = "none"
	// Epidemic1D means the outbreak spans exactly one axis.
	Epidemic1D EpidemicClass = "1d"
	// Epidemic2D means the outbreak spans both axes.
	Epidemic2D EpidemicClass = "2d"
)

// GridSpanClass computes the spanning class of a frame on a grid. A node
// that has left Susceptible was infected at some point, so the
// ever-infected rows and columns can be read off any single frame.
func GridSpanClass(g *Grid, f *Frame) EpidemicClass {
	rows := make([]bool, g.Rows())
	cols := make([]bool, g.Cols())
	for id, c := range f.Cells {
		if c.State != Susceptible {
			r, cc := g.Coord(id)
			rows[r] = true
			cols[cc] = true
		}
	}
	spansRows := allTrue(rows)
	spansCols := allTrue(cols)
	switch {
	case spansRows && spansCols:
		return Epidemic2D
	case spansRows || spansCols:
		return Epidemic1D
	default:
		return EpidemicNone
	}
}

func allTrue(bits []bool) bool {
	for _, b := range bits {
		if !b {
			return false
		}
	}
	return true
}

// EarlyStop is a Callback that ends a grid run as soon as the outbreak
// reaches the target spanning class. Once a 1d target is reached a 2d
// frame also satisfies it: spanning never regresses.
type EarlyStop struct {
	NopCallback
	Grid   *Grid
	Target EpidemicClass
}

func (e *EarlyStop) ShouldStop(f *Frame) bool {
	class := GridSpanClass(e.Grid, f)
	if e.Target == Epidemic1D {
		return class == Epidemic1D || class == Epidemic2D
	}
	return class == e.Target
}
