// Package palette is the color pipeline: HSV conversion, gamma lookup
// tables and interpolation over ordered color stops.
package palette

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Stop is one color at a fixed position in [0,1] along the palette.
type Stop struct {
	Color colorful.Color
	Pos   float64
}

// Palette is an ordered list of color stops. Positions must be strictly
// increasing, starting at 0 and ending at 1. A palette is immutable once
// built; replace it wholesale to change colors.
type Palette []Stop

// New validates the stops and returns them as a palette.
func New(stops ...Stop) (Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("palette: need at least 2 stops, got %d", len(stops))
	}
	if stops[0].Pos != 0 {
		return nil, fmt.Errorf("palette: first stop at %v, want 0", stops[0].Pos)
	}
	if stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("palette: last stop at %v, want 1", stops[len(stops)-1].Pos)
	}
	if !sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Pos < stops[j].Pos }) {
		return nil, fmt.Errorf("palette: stop positions not strictly increasing")
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Pos == stops[i-1].Pos {
			return nil, fmt.Errorf("palette: duplicate stop position %v", stops[i].Pos)
		}
	}
	return Palette(stops), nil
}

// ParseHex builds a palette from hex colors spaced evenly over [0,1].
func ParseHex(hexes ...string) (Palette, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("palette: need at least 2 colors, got %d", len(hexes))
	}
	stops := make([]Stop, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: bad color %q: %w", h, err)
		}
		stops[i] = Stop{Color: c, Pos: float64(i) / float64(len(hexes)-1)}
	}
	return New(stops...)
}

// Default is the palette the engine starts with: deep blue through purple
// to warm white.
func Default() Palette {
	p, _ := ParseHex("#000428", "#004e92", "#9d50bb", "#ffd89b")
	return p
}

// At returns the color at position t. Positions outside [0,1] clamp to the
// nearest endpoint. Channels interpolate linearly between the bracketing
// stops.
func (p Palette) At(t float64) colorful.Color {
	if t <= p[0].Pos {
		return p[0].Color
	}
	if t >= p[len(p)-1].Pos {
		return p[len(p)-1].Color
	}
	for i := 0; i < len(p)-1; i++ {
		lo, hi := p[i], p[i+1]
		if t <= hi.Pos {
			frac := (t - lo.Pos) / (hi.Pos - lo.Pos)
			return lo.Color.BlendRgb(hi.Color, frac)
		}
	}
	return p[len(p)-1].Color
}
