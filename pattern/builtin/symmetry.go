package builtin

import (
	"math"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
)

// Symmetry renders radial waves mirrored around the matrix center.
func Symmetry(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	geom := cfg.Geometry
	centerX := float64(geom.Width) / 2.0
	centerY := float64(geom.Height) / 2.0
	f := float64(frameIndex)

	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			dx := math.Abs(float64(x) - centerX + 0.5)
			dy := math.Abs(float64(y) - centerY + 0.5)
			dist := math.Sqrt(dx*dx + dy*dy)

			wave := math.Sin(dist*cfg.Scale - f*0.05*cfg.Speed)

			c := cfg.Palette.At((wave + 1.0) / 2.0)
			c.R *= cfg.Intensity
			c.G *= cfg.Intensity
			c.B *= cfg.Intensity
			buf.SetXY(x, y, c)
		}
	}
}
