package builtin

import (
	"math"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// Parametric layers several interfering wave sets; every knob is exposed
// through the parameter schema so the control surface can drive it live.
type Parametric struct{}

// Render implements pattern.Pattern.
func (Parametric) Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	waveCount := int(cfg.Param("wave_count", 3))
	if waveCount < 1 {
		waveCount = 1
	}
	amplitude := cfg.Param("wave_amplitude", 1.0)
	phaseShift := cfg.Param("phase_shift", 0.5)
	colorShift := cfg.Param("color_shift", 1.0)
	interference := cfg.Param("interference", 0.3)

	geom := cfg.Geometry
	f := float64(frameIndex)
	hueOffset := math.Sin(f*0.01*colorShift) * 0.3

	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			var sum float64
			for w := 0; w < waveCount; w++ {
				freq := (0.2 + float64(w)*0.1) * cfg.Scale
				phase := float64(w) * phaseShift * math.Pi

				hWave := math.Sin(float64(x)*freq + f*0.02*cfg.Speed + phase)
				vWave := math.Sin(float64(y)*freq + f*0.03*cfg.Speed + phase)
				dWave := math.Sin(float64(x+y)*freq*0.7 + f*0.025*cfg.Speed + phase)

				sum += (hWave + vWave + dWave*interference) / (2.0 + interference) * amplitude
			}
			combined := sum / float64(waveCount)

			pos := (combined+1.0)/2.0 + hueOffset
			c := cfg.Palette.At(pos)
			c.R *= cfg.Intensity
			c.G *= cfg.Intensity
			c.B *= cfg.Intensity
			buf.SetXY(x, y, c)
		}
	}
}

// Params implements pattern.ParamProvider.
func (Parametric) Params() []pattern.ParamSpec {
	return []pattern.ParamSpec{
		{Name: "wave_count", Type: "int", Min: 1, Max: 8, Default: 3,
			Description: "Number of simultaneous wave patterns"},
		{Name: "wave_amplitude", Type: "float", Min: 0.1, Max: 3.0, Default: 1.0,
			Description: "Wave amplitude multiplier"},
		{Name: "phase_shift", Type: "float", Min: 0.0, Max: 2.0, Default: 0.5,
			Description: "Phase shift between waves"},
		{Name: "color_shift", Type: "float", Min: 0.1, Max: 5.0, Default: 1.0,
			Description: "Speed of color cycling"},
		{Name: "interference", Type: "float", Min: 0.0, Max: 1.0, Default: 0.3,
			Description: "Wave interference strength"},
	}
}
