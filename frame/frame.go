// Package frame holds the pixel buffer a pattern paints into and the sink
// boundary that commits a finished frame to hardware.
package frame

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/fieldjoshua/LightBox-2.0/matrix"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

// RGB is one finished output pixel, gamma-corrected 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Buffer is the working frame. It is allocated once per geometry and reused
// every frame; the scheduler is its only writer. Patterns paint working
// colors into it, then Finalize produces the 8-bit output pixels.
type Buffer struct {
	geom   matrix.Geometry
	colors []colorful.Color
}

// NewBuffer allocates a buffer sized to the geometry.
func NewBuffer(geom matrix.Geometry) *Buffer {
	return &Buffer{
		geom:   geom,
		colors: make([]colorful.Color, geom.PixelCount()),
	}
}

// Geometry returns the geometry the buffer was sized for.
func (b *Buffer) Geometry() matrix.Geometry { return b.geom }

// Len is the pixel count.
func (b *Buffer) Len() int { return len(b.colors) }

// Set writes one pixel by strip index. Out-of-range indices are ignored so
// a sloppy pattern cannot write outside the buffer.
func (b *Buffer) Set(i int, c colorful.Color) {
	if i < 0 || i >= len(b.colors) {
		return
	}
	b.colors[i] = c
}

// SetXY writes one pixel by matrix coordinate, routing through the wiring
// topology. Out-of-range coordinates are skipped.
func (b *Buffer) SetXY(x, y int, c colorful.Color) {
	i, err := b.geom.XYToIndex(x, y)
	if err != nil {
		return
	}
	b.colors[i] = c
}

// At reads one pixel by strip index.
func (b *Buffer) At(i int) colorful.Color { return b.colors[i] }

// Clear blacks out every pixel.
func (b *Buffer) Clear() {
	for i := range b.colors {
		b.colors[i] = colorful.Color{}
	}
}

// Finalize converts the working colors into gamma-corrected output pixels,
// writing into dst so the hot path allocates nothing. dst must have the
// same length as the buffer.
func (b *Buffer) Finalize(gamma *palette.GammaTable, dst []RGB) {
	for i, c := range b.colors {
		r, g, bb := c.Clamped().RGB255()
		dst[i] = RGB{
			R: gamma.Correct(r),
			G: gamma.Correct(g),
			B: gamma.Correct(bb),
		}
	}
}
