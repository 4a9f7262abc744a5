package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contagion-sim/contagion-sim/sim/track"
)

var (
	runsDBPath     string
	runsExperiment string
	runsCountOnly  bool
	runsPrune      bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the experiment store",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		store, err := track.Open(runsDBPath)
		if err != nil {
			logrus.Fatalf("Opening experiment store: %v", err)
		}
		defer store.Close()

		if runsPrune {
			n, err := store.DeleteUnfinished(runsExperiment)
			if err != nil {
				logrus.Fatalf("Pruning unfinished runs: %v", err)
			}
			fmt.Printf("Deleted %d unfinished runs\n", n)
			return
		}

		if runsCountOnly {
			n, err := store.CountRuns(runsExperiment)
			if err != nil {
				logrus.Fatalf("Counting runs: %v", err)
			}
			fmt.Printf("%d finished runs in experiment %q\n", n, runsExperiment)
			return
		}

		runs, err := store.ListRuns(runsExperiment)
		if err != nil {
			logrus.Fatalf("Listing runs: %v", err)
		}
		for _, r := range runs {
			status := "unfinished"
			if r.Finished {
				status = fmt.Sprintf("steps=%d outbreak=%.3f class=%s", r.Steps, r.EverInfectedFraction, r.EpidemicClass)
			}
			fmt.Printf("%s  %s  %s/%d  alpha=%v beta=%v %s seed=%d  %s\n",
				r.ID, r.Experiment, r.Topology, r.Nodes, r.Alpha, r.Beta, r.Recovery, r.Seed, status)
		}
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsDBPath, "db", "contagion.db", "SQLite experiment store path")
	runsCmd.Flags().StringVar(&runsExperiment, "experiment", "", "Filter by experiment name (empty = all)")
	runsCmd.Flags().BoolVar(&runsCountOnly, "count", false, "Print only the finished-run count")
	runsCmd.Flags().BoolVar(&runsPrune, "prune", false, "Delete unfinished (crashed or interrupted) runs")

	rootCmd.AddCommand(runsCmd)
}
