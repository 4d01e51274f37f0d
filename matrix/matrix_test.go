package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripBothTopologies(t *testing.T) {
	geometries := []Geometry{
		{Width: 4, Height: 4, Wiring: Progressive},
		{Width: 4, Height: 4, Wiring: Serpentine},
		{Width: 10, Height: 10, Wiring: Serpentine},
		{Width: 64, Height: 20, Wiring: Serpentine},
		{Width: 300, Height: 1, Wiring: Progressive},
	}

	for _, g := range geometries {
		require.NoError(t, g.Validate())
		seen := make(map[int]bool, g.PixelCount())
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				i, err := g.XYToIndex(x, y)
				require.NoError(t, err)
				require.True(t, i >= 0 && i < g.PixelCount(), "index %d out of range for %+v", i, g)
				assert.False(t, seen[i], "index %d mapped twice for %+v", i, g)
				seen[i] = true

				x2, y2, err := g.IndexToXY(i)
				require.NoError(t, err)
				assert.Equal(t, x, x2)
				assert.Equal(t, y, y2)
			}
		}
		assert.Len(t, seen, g.PixelCount())
	}
}

func TestSerpentine4x4KnownValues(t *testing.T) {
	g := Geometry{Width: 4, Height: 4, Wiring: Serpentine}

	cases := []struct{ x, y, want int }{
		{0, 0, 0},
		{3, 0, 3},
		{3, 1, 4},
		{0, 1, 7},
		{0, 2, 8},
		{3, 3, 12},
		{0, 3, 15},
	}
	for _, c := range cases {
		i, err := g.XYToIndex(c.x, c.y)
		require.NoError(t, err)
		assert.Equal(t, c.want, i, "(%d,%d)", c.x, c.y)
	}
}

func TestProgressive64x64KnownValues(t *testing.T) {
	g := Geometry{Width: 64, Height: 64, Wiring: Progressive}

	cases := []struct{ x, y, want int }{
		{0, 0, 0},
		{63, 0, 63},
		{0, 1, 64},
		{63, 63, 4095},
	}
	for _, c := range cases {
		i, err := g.XYToIndex(c.x, c.y)
		require.NoError(t, err)
		assert.Equal(t, c.want, i)
	}
}

func TestOutOfRange(t *testing.T) {
	g := Geometry{Width: 8, Height: 8, Wiring: Serpentine}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		_, err := g.XYToIndex(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "(%d,%d)", c[0], c[1])
	}

	for _, i := range []int{-1, 64, 1000} {
		_, _, err := g.IndexToXY(i)
		assert.ErrorIs(t, err, ErrOutOfRange, "index %d", i)
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Geometry{Width: 0, Height: 4, Wiring: Progressive}.Validate())
	assert.Error(t, Geometry{Width: 4, Height: 0, Wiring: Serpentine}.Validate())
	assert.Error(t, Geometry{Width: 4, Height: 4, Wiring: "zigzag"}.Validate())
	assert.NoError(t, Geometry{Width: 1, Height: 1, Wiring: Progressive}.Validate())
}
