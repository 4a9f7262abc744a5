// Package render turns a recorded simulation history into grayscale PNG
// frames, one image per snapshot: susceptible cells are black, infected
// cells brighten with age, recovered cells are white.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/contagion-sim/contagion-sim/sim"
	"github.com/contagion-sim/contagion-sim/sim/history"
)

const (
	shadeSusceptible = 0x00
	shadeInfectedMin = 0x60
	shadeInfectedMax = 0xC0
	shadeRecovered   = 0xFF
	// ages at or beyond ageRampSteps all map to shadeInfectedMax
	ageRampSteps = 8
)

// Frames writes one PNG per snapshot into dir, named frame_00000.png
// onward. scale is the pixel edge length of one cell. Only grid
// histories carry the 2D layout needed to render.
func Frames(h *history.History, dir string, scale int) error {
	if h.Rows == 0 || h.Cols == 0 {
		return fmt.Errorf("history has no grid layout (topology %q), cannot render", h.Topology)
	}
	if scale < 1 {
		scale = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}

	for i, snap := range h.Snapshots {
		img := frameImage(h, &snap, scale)
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating frame %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encoding frame %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing frame %s: %w", path, err)
		}
	}
	return nil
}

func frameImage(h *history.History, snap *history.Snapshot, scale int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Cols*scale, h.Rows*scale))
	for id := range snap.States {
		shade := cellShade(sim.State(snap.States[id]), snap.Ages[id])
		row, col := id/h.Cols, id%h.Cols
		for dy := 0; dy < scale; dy++ {
			base := (row*scale+dy)*img.Stride + col*scale
			for dx := 0; dx < scale; dx++ {
				img.Pix[base+dx] = shade
			}
		}
	}
	return img
}

func cellShade(state sim.State, age int) uint8 {
	switch state {
	case sim.Infected:
		if age > ageRampSteps {
			age = ageRampSteps
		}
		return uint8(shadeInfectedMin + age*(shadeInfectedMax-shadeInfectedMin)/ageRampSteps)
	case sim.Recovered:
		return shadeRecovered
	default:
		return shadeSusceptible
	}
}
