// Package matrix describes the physical LED layout and maps between
// 2-D matrix coordinates and linear strip indices.
package matrix

import (
	"errors"
	"fmt"
)

// Topology is the wiring order of the LED strip behind the matrix.
type Topology string

const (
	// Progressive wiring runs every row left to right.
	Progressive Topology = "progressive"
	// Serpentine wiring reverses direction on odd rows.
	Serpentine Topology = "serpentine"
)

// ErrOutOfRange is returned when a coordinate or index falls outside the
// matrix. Callers are expected to skip the pixel, not abort the frame.
var ErrOutOfRange = errors.New("matrix: coordinate out of range")

// Geometry is the immutable shape of one rendering session. A strip is a
// matrix with Height 1.
type Geometry struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Wiring Topology `json:"wiring"`
}

// PixelCount is the number of addressable LEDs.
func (g Geometry) PixelCount() int {
	return g.Width * g.Height
}

// Validate reports whether the geometry describes a usable matrix.
func (g Geometry) Validate() error {
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("matrix: invalid dimensions %dx%d", g.Width, g.Height)
	}
	switch g.Wiring {
	case Progressive, Serpentine:
		return nil
	default:
		return fmt.Errorf("matrix: unknown wiring %q", g.Wiring)
	}
}

// XYToIndex maps a matrix coordinate to its strip index.
func (g Geometry) XYToIndex(x, y int) (int, error) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0, ErrOutOfRange
	}
	if g.Wiring == Serpentine && y%2 == 1 {
		return y*g.Width + (g.Width - 1 - x), nil
	}
	return y*g.Width + x, nil
}

// IndexToXY maps a strip index back to its matrix coordinate. It is the
// exact inverse of XYToIndex for every valid input.
func (g Geometry) IndexToXY(i int) (int, int, error) {
	if i < 0 || i >= g.PixelCount() {
		return 0, 0, ErrOutOfRange
	}
	y := i / g.Width
	x := i % g.Width
	if g.Wiring == Serpentine && y%2 == 1 {
		x = g.Width - 1 - x
	}
	return x, y, nil
}
