package builtin

import (
	"math"
	"math/rand"
	"time"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// Shimmer sparkles random pixels over a slow wave, tinted by the palette
// midpoint. The random source is owned by the pattern instance, not the
// global one, so two engines never contend.
type Shimmer struct {
	rng *rand.Rand
}

// NewShimmer seeds a shimmer pattern from the clock.
func NewShimmer() *Shimmer {
	return &Shimmer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Render implements pattern.Pattern.
func (s *Shimmer) Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	base := cfg.Palette.At(0.5)
	waveWeight := cfg.Param("wave_weight", 0.3)
	f := float64(frameIndex)

	for i := 0; i < buf.Len(); i++ {
		sparkle := s.rng.Float64()
		wave := (math.Sin(f*0.05*cfg.Speed+float64(i)*0.1) + 1.0) / 2.0
		level := (sparkle*(1.0-waveWeight) + wave*waveWeight) * cfg.Intensity

		c := base
		c.R *= level
		c.G *= level
		c.B *= level
		buf.Set(i, c)
	}
}

// Params implements pattern.ParamProvider.
func (s *Shimmer) Params() []pattern.ParamSpec {
	return []pattern.ParamSpec{
		{Name: "wave_weight", Type: "float", Min: 0, Max: 1, Default: 0.3,
			Description: "How much the flowing wave dominates the random sparkle"},
	}
}
