package builtin

import (
	"math"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

// Cosmic is the default animation and the engine's fallback: two phase-
// shifted waves drive a hue sweep across the matrix.
func Cosmic(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	geom := cfg.Geometry
	t := float64(frameIndex) * 0.05 * cfg.Speed
	colorSpeed := 0.02 * cfg.Speed
	waveScale := 0.3 * cfg.Scale

	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			waveX := math.Sin(t+float64(x)*waveScale)*0.5 + 0.5
			waveY := math.Cos(t+float64(y)*waveScale)*0.5 + 0.5
			combined := (waveX + waveY) * 0.5

			hue := math.Mod(combined+float64(frameIndex)*colorSpeed, 1.0) * 360.0
			buf.SetXY(x, y, palette.HSV(hue, 1.0, cfg.Intensity))
		}
	}
}
