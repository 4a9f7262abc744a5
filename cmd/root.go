package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/contagion-sim/contagion-sim/sim"
	"github.com/contagion-sim/contagion-sim/sim/history"
	"github.com/contagion-sim/contagion-sim/sim/track"
)

var (
	// CLI flags shared across subcommands
	logLevel string

	// Topology flags
	topologyKind string  // "grid" or "smallworld"
	gridRows     int     // grid height
	gridCols     int     // grid width
	gridDiagonal bool    // 8-neighbor model instead of 4
	gridWrap     bool    // periodic boundary conditions
	swNodes      int     // small-world node count
	swDegree     int     // small-world mean degree
	swRewire     float64 // small-world rewiring probability

	// Epidemic flags
	alpha    float64 // synergy-free infection probability
	beta     float64 // synergy coefficient
	tau      int     // fixed recovery duration in steps
	gamma    float64 // geometric per-step recovery probability (overrides tau when > 0)
	seed     int64   // master seed for the run
	maxSteps int     // step bound, 0 = unbounded
	seedIDs  []int   // explicit seed nodes; empty = center

	// Collaborator flags
	historyPath  string // write per-step history JSON here
	historyEvery int    // snapshot sampling interval
	trackDBPath  string // SQLite experiment store path
	experiment   string // experiment name in the store
	logHistory   bool   // also persist per-step counts to the store
	stopAtClass  string // stop once the grid epidemic spans ("1d" or "2d")
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "contagion-sim",
	Short: "Stochastic SIR epidemic simulator for spatial and small-world contact networks",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		topo, err := buildTopology()
		if err != nil {
			logrus.Fatalf("Invalid topology: %v", err)
		}

		s, err := sim.NewSimulation(topo, sim.Params{
			Alpha:    alpha,
			Beta:     beta,
			Recovery: recoveryRule(),
			Seed:     seed,
			MaxSteps: maxSteps,
		})
		if err != nil {
			logrus.Fatalf("Invalid parameters: %v", err)
		}

		if len(seedIDs) > 0 {
			err = s.Seed(seedIDs...)
		} else {
			err = s.SeedCenter()
		}
		if err != nil {
			logrus.Fatalf("Seeding failed: %v", err)
		}

		var callbacks []sim.Callback
		var recorder *history.Recorder
		if historyPath != "" {
			recorder = history.NewRecorder(historyEvery)
			callbacks = append(callbacks, recorder)
		}
		if trackDBPath != "" {
			store, err := track.Open(trackDBPath)
			if err != nil {
				logrus.Fatalf("Opening experiment store: %v", err)
			}
			defer store.Close()
			callbacks = append(callbacks, track.NewCallback(store, experiment, logHistory))
		}
		if stopAtClass != "" {
			grid, ok := topo.(*sim.Grid)
			if !ok {
				logrus.Fatalf("--stop-at-epidemic requires a grid topology")
			}
			target := sim.EpidemicClass(stopAtClass)
			if target != sim.Epidemic1D && target != sim.Epidemic2D {
				logrus.Fatalf("Invalid --stop-at-epidemic %q (want 1d or 2d)", stopAtClass)
			}
			callbacks = append(callbacks, &sim.EarlyStop{Grid: grid, Target: target})
		}

		summary, err := s.Run(callbacks...)
		if err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		summary.Print()

		if recorder != nil {
			if err := recorder.Save(historyPath); err != nil {
				logrus.Fatalf("Saving history: %v", err)
			}
			logrus.Infof("History with %d snapshots written to %s", len(recorder.History().Snapshots), historyPath)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func buildTopology() (sim.Topology, error) {
	switch topologyKind {
	case "grid":
		return sim.NewGrid(sim.GridConfig{Rows: gridRows, Cols: gridCols, Diagonal: gridDiagonal, Wrap: gridWrap})
	case "smallworld":
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemTopology)
		return sim.NewSmallWorld(sim.SmallWorldConfig{Nodes: swNodes, Degree: swDegree, Rewire: swRewire}, rng)
	default:
		return nil, fmt.Errorf("%w: unknown topology kind %q", sim.ErrConfiguration, topologyKind)
	}
}

func recoveryRule() sim.RecoveryRule {
	if gamma > 0 {
		return sim.Geometric{Gamma: gamma}
	}
	return sim.FixedDuration{Steps: tau}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&topologyKind, "topology", "grid", "Network family (grid, smallworld)")
	runCmd.Flags().IntVar(&gridRows, "rows", 64, "Grid rows")
	runCmd.Flags().IntVar(&gridCols, "cols", 64, "Grid columns")
	runCmd.Flags().BoolVar(&gridDiagonal, "diagonal", false, "Include diagonal neighbors (8-neighbor model)")
	runCmd.Flags().BoolVar(&gridWrap, "wrap", false, "Periodic boundary conditions")
	runCmd.Flags().IntVar(&swNodes, "nodes", 1000, "Small-world node count")
	runCmd.Flags().IntVar(&swDegree, "degree", 4, "Small-world mean degree (even)")
	runCmd.Flags().Float64Var(&swRewire, "rewire", 0.1, "Small-world rewiring probability")

	runCmd.Flags().Float64Var(&alpha, "alpha", 0.7, "Synergy-free infection probability per infectious neighbor")
	runCmd.Flags().Float64Var(&beta, "beta", 0.0, "Synergy coefficient (positive collaborative, negative competitive)")
	runCmd.Flags().IntVar(&tau, "tau", 1, "Fixed infectious duration in steps")
	runCmd.Flags().Float64Var(&gamma, "gamma", 0, "Geometric per-step recovery probability (overrides --tau when > 0)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for topology and transition randomness")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum steps (0 = run until burnout)")
	runCmd.Flags().IntSliceVar(&seedIDs, "seed-nodes", nil, "Comma-separated node ids to infect at time 0 (default: center)")

	runCmd.Flags().StringVar(&historyPath, "history", "", "Write per-step snapshot history JSON to this path")
	runCmd.Flags().IntVar(&historyEvery, "history-every", 1, "Snapshot sampling interval in steps")
	runCmd.Flags().StringVar(&trackDBPath, "db", "", "SQLite experiment store path")
	runCmd.Flags().StringVar(&experiment, "experiment", "default", "Experiment name in the store")
	runCmd.Flags().BoolVar(&logHistory, "log-history", false, "Also persist per-step compartment counts to the store")
	runCmd.Flags().StringVar(&stopAtClass, "stop-at-epidemic", "", "Stop once the grid epidemic spans (1d or 2d)")

	rootCmd.AddCommand(runCmd)
}
