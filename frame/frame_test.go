package frame

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldjoshua/LightBox-2.0/matrix"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

func TestSetXYRoutesThroughWiring(t *testing.T) {
	b := NewBuffer(matrix.Geometry{Width: 4, Height: 4, Wiring: matrix.Serpentine})

	red := colorful.Color{R: 1}
	b.SetXY(3, 1, red)

	// Serpentine: (3,1) lands on strip index 4.
	assert.Equal(t, red, b.At(4))
	assert.Equal(t, colorful.Color{}, b.At(7))
}

func TestSetXYSkipsOutOfRange(t *testing.T) {
	b := NewBuffer(matrix.Geometry{Width: 2, Height: 2, Wiring: matrix.Progressive})

	b.SetXY(5, 5, colorful.Color{R: 1})
	b.Set(-1, colorful.Color{R: 1})
	b.Set(4, colorful.Color{R: 1})

	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, colorful.Color{}, b.At(i))
	}
}

func TestFinalizeAppliesGamma(t *testing.T) {
	b := NewBuffer(matrix.Geometry{Width: 2, Height: 1, Wiring: matrix.Progressive})
	b.Set(0, colorful.Color{R: 1, G: 1, B: 1})
	b.Set(1, colorful.Color{R: 0.5})

	gamma, err := palette.NewGammaTable(2.2)
	require.NoError(t, err)

	out := make([]RGB, b.Len())
	b.Finalize(gamma, out)

	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, out[0])
	// 0.5 maps to 128 raw, then through the 2.2 lut.
	assert.Equal(t, gamma.Correct(128), out[1].R)
	assert.Equal(t, uint8(0), out[1].G)
	assert.Equal(t, uint8(0), out[1].B)
}

func TestFinalizeClampsWorkingColors(t *testing.T) {
	b := NewBuffer(matrix.Geometry{Width: 1, Height: 1, Wiring: matrix.Progressive})
	// A pattern overshooting the working range must not wrap at output.
	b.Set(0, colorful.Color{R: 1.7, G: -0.3, B: 0.2})

	gamma, err := palette.NewGammaTable(1.0)
	require.NoError(t, err)

	out := make([]RGB, 1)
	b.Finalize(gamma, out)

	assert.Equal(t, uint8(255), out[0].R)
	assert.Equal(t, uint8(0), out[0].G)
}

func TestClear(t *testing.T) {
	b := NewBuffer(matrix.Geometry{Width: 3, Height: 1, Wiring: matrix.Progressive})
	for i := 0; i < b.Len(); i++ {
		b.Set(i, colorful.Color{R: 1, G: 1, B: 1})
	}
	b.Clear()
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, colorful.Color{}, b.At(i))
	}
}

func TestCaptureSink(t *testing.T) {
	c := &Capture{}
	require.NoError(t, c.Commit([]RGB{{R: 1}, {G: 2}}))
	require.NoError(t, c.SetBrightness(0.4))
	require.NoError(t, c.Blank())

	assert.Equal(t, []RGB{{R: 1}, {G: 2}}, c.Last())
	assert.Equal(t, 1, c.Commits())
	assert.Equal(t, 1, c.Blanks())
	assert.Equal(t, 0.4, c.Brightness())
}
