package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contagion-sim/contagion-sim/internal/render"
	"github.com/contagion-sim/contagion-sim/sim/history"
)

var (
	renderHistoryPath string
	renderOutDir      string
	renderScale       int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a recorded history into PNG frames",
	Long: "Load a snapshot history written by `run --history` and write one grayscale PNG " +
		"per snapshot. Frames can be assembled into a video with any external encoder, " +
		"e.g. ffmpeg -i frame_%05d.png out.mp4.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		h, err := history.Load(renderHistoryPath)
		if err != nil {
			logrus.Fatalf("Loading history: %v", err)
		}

		if err := render.Frames(h, renderOutDir, renderScale); err != nil {
			logrus.Fatalf("Rendering frames: %v", err)
		}

		curve := history.Summarize(h)
		logrus.Infof("Wrote %d frames to %s (peak infected %d at step %d, attack rate %.3f)",
			len(h.Snapshots), renderOutDir, curve.PeakInfected, curve.PeakTime, curve.FinalAttackRate)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderHistoryPath, "history", "", "History JSON path written by run --history")
	renderCmd.Flags().StringVar(&renderOutDir, "out", "frames", "Output directory for PNG frames")
	renderCmd.Flags().IntVar(&renderScale, "scale", 4, "Pixel edge length of one cell")
	_ = renderCmd.MarkFlagRequired("history")

	rootCmd.AddCommand(renderCmd)
}
