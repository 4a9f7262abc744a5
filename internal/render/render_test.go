package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contagion-sim/contagion-sim/sim"
	"github.com/contagion-sim/contagion-sim/sim/history"
)

func testHistory() *history.History {
	return &history.History{
		Topology: "grid",
		Nodes:    4,
		Rows:     2,
		Cols:     2,
		Snapshots: []history.Snapshot{
			{
				Time:   1,
				States: []uint8{uint8(sim.Susceptible), uint8(sim.Infected), uint8(sim.Recovered), uint8(sim.Infected)},
				Ages:   []int{0, 0, 0, 20},
			},
		},
	}
}

func TestFrames_WritesOnePNGPerSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Frames(testHistory(), dir, 3))

	f, err := os.Open(filepath.Join(dir, "frame_00000.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestFrames_CellShades(t *testing.T) {
	h := testHistory()
	img := frameImage(h, &h.Snapshots[0], 1)

	assert.EqualValues(t, shadeSusceptible, img.GrayAt(0, 0).Y)
	assert.EqualValues(t, shadeInfectedMin, img.GrayAt(1, 0).Y, "fresh infection")
	assert.EqualValues(t, shadeRecovered, img.GrayAt(0, 1).Y)
	assert.EqualValues(t, shadeInfectedMax, img.GrayAt(1, 1).Y, "age beyond the ramp is clamped")
}

func TestFrames_RejectsNonGridHistory(t *testing.T) {
	h := &history.History{Topology: "smallworld", Nodes: 10}
	assert.Error(t, Frames(h, t.TempDir(), 1))
}
