package cmd

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contagion-sim/contagion-sim/internal/observability"
	"github.com/contagion-sim/contagion-sim/sim/sweep"
	"github.com/contagion-sim/contagion-sim/sim/track"
)

var (
	sweepConfigPath string
	sweepDBPath     string
	sweepLogHistory bool
	metricsAddr     string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a parameter-grid batch of independent simulations",
	Long: "Expand the parameter_grid of a YAML sweep config into its cartesian product and " +
		"run runs_per_point independent simulations per point, each with a fresh topology, " +
		"state, and derived seed. Results are aggregated per point and optionally persisted " +
		"to a SQLite experiment store.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := sweep.Load(sweepConfigPath)
		if err != nil {
			logrus.Fatalf("Loading sweep config: %v", err)
		}

		runner := &sweep.Runner{Config: cfg, LogHistory: sweepLogHistory}

		if sweepDBPath != "" {
			store, err := track.Open(sweepDBPath)
			if err != nil {
				logrus.Fatalf("Opening experiment store: %v", err)
			}
			defer store.Close()
			runner.Store = store
		}

		if metricsAddr != "" {
			collector, err := observability.NewSweepCollector(nil)
			if err != nil {
				logrus.Fatalf("Registering sweep metrics: %v", err)
			}
			runner.Collector = collector
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			go func() {
				logrus.Infof("Serving sweep metrics on %s/metrics", metricsAddr)
				if err := http.ListenAndServe(metricsAddr, mux); err != nil {
					logrus.Errorf("Metrics server: %v", err)
				}
			}()
		}

		results, err := runner.Run()
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		fmt.Println("=== Sweep Results ===")
		for _, res := range results {
			fmt.Printf("%v  runs=%d  outbreak=%.3f±%.3f  steps=%.1f  extinct=%d/%d  spanning-2d=%d/%d\n",
				res.Point, res.Runs, res.OutbreakMean, res.OutbreakStdDev, res.StepsMean,
				res.ExtinctRuns, res.Runs, res.SpanningRuns, res.Runs)
		}
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "sweep.yml", "Sweep config YAML path")
	sweepCmd.Flags().StringVar(&sweepDBPath, "db", "", "SQLite experiment store path")
	sweepCmd.Flags().BoolVar(&sweepLogHistory, "log-history", false, "Persist per-step compartment counts for every run")
	sweepCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus sweep metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(sweepCmd)
}
