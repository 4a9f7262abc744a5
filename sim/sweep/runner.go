package sweep

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/contagion-sim/contagion-sim/internal/observability"
	"github.com/contagion-sim/contagion-sim/sim"
	"github.com/contagion-sim/contagion-sim/sim/track"
)

// Runner executes every run of an expanded sweep sequentially. Store and
// Collector are optional; when set, every run is persisted and observed.
type Runner struct {
	Config     *Config
	Store      *track.Store
	Collector  *observability.SweepCollector
	LogHistory bool
}

// Result aggregates the runs of one grid point.
type Result struct {
	Point Point
	Runs  int

	OutbreakMean   float64
	OutbreakStdDev float64
	StepsMean      float64
	ExtinctRuns    int
	SpanningRuns   int // runs ending in a 2d spanning epidemic (grids only)
}

// Run executes the whole sweep and returns one aggregate per grid point.
// Seeds are derived as BaseSeed + a global run counter, so every run in
// the sweep is independently seeded yet the sweep as a whole is
// reproducible from the config alone.
func (r *Runner) Run() ([]Result, error) {
	points := r.Config.Points()
	logrus.Infof("sweep %q: %d grid points x %d runs", r.Config.ExperimentName, len(points), r.Config.RunsPerPoint)

	results := make([]Result, 0, len(points))
	runCounter := int64(0)
	for i, point := range points {
		outbreaks := make([]float64, 0, r.Config.RunsPerPoint)
		steps := make([]float64, 0, r.Config.RunsPerPoint)
		res := Result{Point: point, Runs: r.Config.RunsPerPoint}

		for rep := 0; rep < r.Config.RunsPerPoint; rep++ {
			seed := r.Config.BaseSeed + runCounter
			runCounter++

			summary, err := r.runOne(point, seed)
			if err != nil {
				return nil, fmt.Errorf("point %d rep %d: %w", i, rep, err)
			}
			outbreaks = append(outbreaks, summary.EverInfectedFraction)
			steps = append(steps, float64(summary.Steps))
			if summary.Extinct {
				res.ExtinctRuns++
			}
			if summary.EpidemicClass == sim.Epidemic2D {
				res.SpanningRuns++
			}
			if r.Collector != nil {
				r.Collector.ObserveRun(summary)
			}
		}

		res.OutbreakMean = stat.Mean(outbreaks, nil)
		res.StepsMean = stat.Mean(steps, nil)
		if len(outbreaks) > 1 {
			res.OutbreakStdDev = stat.StdDev(outbreaks, nil)
			if math.IsNaN(res.OutbreakStdDev) {
				res.OutbreakStdDev = 0
			}
		}
		results = append(results, res)
		logrus.Infof("point %d/%d %v: outbreak %.3f±%.3f over %d runs",
			i+1, len(points), point, res.OutbreakMean, res.OutbreakStdDev, res.Runs)
	}
	return results, nil
}

// runOne builds a fresh topology, simulation, and callbacks for a single
// run. Nothing is reused across runs.
func (r *Runner) runOne(point Point, seed int64) (*sim.Summary, error) {
	topo, err := r.buildTopology(point, seed)
	if err != nil {
		return nil, err
	}

	params := sim.Params{
		Alpha:    point.Get("alpha", 0),
		Beta:     point.Get("beta", 0),
		Recovery: recoveryFor(point),
		Seed:     seed,
		MaxSteps: r.Config.MaxSteps,
	}
	s, err := sim.NewSimulation(topo, params)
	if err != nil {
		return nil, err
	}
	if err := s.SeedCenter(); err != nil {
		return nil, err
	}

	var callbacks []sim.Callback
	if r.Store != nil {
		callbacks = append(callbacks, track.NewCallback(r.Store, r.Config.ExperimentName, r.LogHistory))
	}
	return s.Run(callbacks...)
}

func (r *Runner) buildTopology(point Point, seed int64) (sim.Topology, error) {
	t := r.Config.Topology
	switch t.Kind {
	case "grid":
		rows, cols := t.Rows, t.Cols
		if size, ok := point["size"]; ok {
			rows, cols = int(size), int(size)
		}
		return sim.NewGrid(sim.GridConfig{Rows: rows, Cols: cols, Diagonal: t.Diagonal, Wrap: t.Wrap})
	case "smallworld":
		nodes := t.Nodes
		if size, ok := point["size"]; ok {
			nodes = int(size)
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemTopology)
		return sim.NewSmallWorld(sim.SmallWorldConfig{
			Nodes:  nodes,
			Degree: t.Degree,
			Rewire: point.Get("rewire", t.Rewire),
		}, rng)
	default:
		return nil, fmt.Errorf("%w: unknown topology kind %q", sim.ErrConfiguration, t.Kind)
	}
}

func recoveryFor(point Point) sim.RecoveryRule {
	if gamma, ok := point["gamma"]; ok {
		return sim.Geometric{Gamma: gamma}
	}
	return sim.FixedDuration{Steps: int(point.Get("tau", 1))}
}
