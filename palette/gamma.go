package palette

import (
	"fmt"
	"math"
)

// GammaTable maps a raw 0-255 channel value to its gamma-corrected value.
// It is rebuilt whenever the exponent changes and applied as a lookup in
// the per-pixel hot path.
type GammaTable struct {
	exp float64
	lut [256]uint8
}

// NewGammaTable precomputes the table for the given exponent.
func NewGammaTable(gamma float64) (*GammaTable, error) {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("palette: gamma must be > 0, got %v", gamma)
	}
	t := &GammaTable{exp: gamma}
	for i := 0; i < 256; i++ {
		v := 255.0 * math.Pow(float64(i)/255.0, gamma)
		t.lut[i] = uint8(math.Round(v))
	}
	return t, nil
}

// Exponent returns the gamma the table was built for.
func (t *GammaTable) Exponent() float64 { return t.exp }

// Correct looks up the corrected value for one channel.
func (t *GammaTable) Correct(v uint8) uint8 { return t.lut[v] }
