package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/matrix"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

func snapshot(geom matrix.Geometry) config.Snapshot {
	return config.Snapshot{
		Geometry:   geom,
		Brightness: 0.8,
		Gamma:      2.2,
		Speed:      1.0,
		Intensity:  1.0,
		Scale:      1.0,
		Palette:    palette.Default(),
	}
}

func TestRegistryShipsFullSet(t *testing.T) {
	r := NewRegistry()

	name, fallback := r.Fallback()
	assert.Equal(t, "cosmic", name)
	assert.NotNil(t, fallback)

	assert.Equal(t,
		[]string{"cosmic", "noise", "parametric_waves", "shimmer", "symmetry", "waves"},
		r.List())
}

func TestEveryPatternPaintsWithinRange(t *testing.T) {
	geom := matrix.Geometry{Width: 8, Height: 8, Wiring: matrix.Serpentine}
	r := NewRegistry()

	for _, name := range r.List() {
		p, ok := r.Get(name)
		require.True(t, ok, name)

		buf := frame.NewBuffer(geom)
		cfg := snapshot(geom)
		// A few frames so time-dependent terms move.
		for f := uint64(0); f < 5; f++ {
			p.Render(buf, cfg, f)
		}

		painted := 0
		for i := 0; i < buf.Len(); i++ {
			c := buf.At(i)
			assert.False(t, c.R < -1e9 || c.R > 1e9, "%s produced wild channel", name)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				painted++
			}
		}
		assert.Greater(t, painted, 0, "%s painted nothing", name)
	}
}

func TestPatternsHonorStripGeometry(t *testing.T) {
	// Height 1 strips are a valid geometry; nothing may index out of it.
	geom := matrix.Geometry{Width: 30, Height: 1, Wiring: matrix.Progressive}
	r := NewRegistry()

	for _, name := range r.List() {
		p, _ := r.Get(name)
		buf := frame.NewBuffer(geom)
		assert.NotPanics(t, func() { p.Render(buf, snapshot(geom), 7) }, name)
	}
}

func TestParametricSchemaRoundTrip(t *testing.T) {
	r := NewRegistry()
	specs := r.Params("parametric_waves")
	require.NotEmpty(t, specs)

	names := make(map[string]bool)
	for _, s := range specs {
		names[s.Name] = true
		assert.NotEmpty(t, s.Type, s.Name)
		assert.LessOrEqual(t, s.Min, s.Max, s.Name)
	}
	for _, want := range []string{"wave_count", "wave_amplitude", "phase_shift", "color_shift", "interference"} {
		assert.True(t, names[want], want)
	}
}

func TestParametricRespectsOverrides(t *testing.T) {
	geom := matrix.Geometry{Width: 6, Height: 6, Wiring: matrix.Progressive}

	base := snapshot(geom)
	tweaked := snapshot(geom)
	tweaked.Params = map[string]float64{"wave_count": 8, "interference": 1.0}

	a := frame.NewBuffer(geom)
	b := frame.NewBuffer(geom)
	Parametric{}.Render(a, base, 42)
	Parametric{}.Render(b, tweaked, 42)

	differs := false
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "overrides had no effect on the output")
}
