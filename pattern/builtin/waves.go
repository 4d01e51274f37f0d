package builtin

import (
	"math"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
)

// Waves combines three sine components (horizontal, vertical, diagonal)
// and maps the sum onto the palette.
func Waves(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	geom := cfg.Geometry
	f := float64(frameIndex)

	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			wave1 := math.Sin(float64(x)*0.3*cfg.Scale + f*0.03*cfg.Speed)
			wave2 := math.Sin(float64(y)*0.3*cfg.Scale + f*0.04*cfg.Speed)
			wave3 := math.Sin(float64(x+y)*0.2*cfg.Scale + f*0.02*cfg.Speed)
			combined := (wave1 + wave2 + wave3) / 3.0

			c := cfg.Palette.At((combined + 1.0) / 2.0)
			c.R *= cfg.Intensity
			c.G *= cfg.Intensity
			c.B *= cfg.Intensity
			buf.SetXY(x, y, c)
		}
	}
}
