package builtin

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// Noise drifts smooth opensimplex noise across the matrix and maps it onto
// the palette. The normalized generator keeps every sample in [0,1], so no
// running min/max adjustment is needed.
type Noise struct {
	noise opensimplex.Noise
}

// NewNoise seeds a noise pattern from the clock.
func NewNoise() *Noise {
	return &Noise{noise: opensimplex.NewNormalized(time.Now().UnixNano())}
}

// Render implements pattern.Pattern.
func (n *Noise) Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	geom := cfg.Geometry
	zoom := cfg.Param("zoom", 0.15) * cfg.Scale
	t := float64(frameIndex) * 0.01 * cfg.Speed

	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			v := n.noise.Eval3(float64(x)*zoom, float64(y)*zoom, t)

			c := cfg.Palette.At(v)
			c.R *= cfg.Intensity
			c.G *= cfg.Intensity
			c.B *= cfg.Intensity
			buf.SetXY(x, y, c)
		}
	}
}

// Params implements pattern.ParamProvider.
func (n *Noise) Params() []pattern.ParamSpec {
	return []pattern.ParamSpec{
		{Name: "zoom", Type: "float", Min: 0.01, Max: 1.0, Default: 0.15,
			Description: "Spatial frequency of the noise field"},
	}
}
