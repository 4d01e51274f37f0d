package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV converts hue (degrees), saturation and value to a working color.
// Hue wraps modulo 360; saturation and value clamp to [0,1]. The 6-sector
// conversion in go-colorful keeps every channel inside [0,1] at the sector
// boundaries, so the result never needs post-hoc clamping.
func HSV(h, s, v float64) colorful.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, clamp01(s), clamp01(v))
}

// HSVToRGB converts straight to 8-bit channels for callers that bypass the
// float pipeline.
func HSVToRGB(h, s, v float64) (uint8, uint8, uint8) {
	return HSV(h, s, v).RGB255()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
