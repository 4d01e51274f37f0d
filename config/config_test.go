package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldjoshua/LightBox-2.0/matrix"
)

func TestApplyMixedValidity(t *testing.T) {
	s := NewStore()

	res := s.Apply(map[string]interface{}{
		"brightness": 0.5,
		"gamma":      -1.0,
	})

	assert.Equal(t, []string{"brightness"}, res.Applied)
	assert.Equal(t, []string{"gamma"}, res.Rejected)

	snap := s.Snapshot()
	assert.Equal(t, 0.5, snap.Brightness)
	assert.Equal(t, DefaultGamma, snap.Gamma)
}

func TestApplyUnknownFieldRejectedIndividually(t *testing.T) {
	s := NewStore()

	res := s.Apply(map[string]interface{}{
		"speed":      2.0,
		"wavelength": 7,
	})

	assert.Equal(t, []string{"speed"}, res.Applied)
	assert.Equal(t, []string{"wavelength"}, res.Rejected)
	assert.Equal(t, 2.0, s.Snapshot().Speed)
}

func TestApplyRangeChecks(t *testing.T) {
	s := NewStore()

	res := s.Apply(map[string]interface{}{
		"brightness": 1.5,
		"intensity":  -0.1,
		"scale":      0.0,
	})
	assert.Empty(t, res.Applied)
	assert.Len(t, res.Rejected, 3)
}

func TestApplyGeometryAllOrNothing(t *testing.T) {
	s := NewStore()
	before := s.Snapshot().Geometry

	res := s.Apply(map[string]interface{}{
		"geometry": map[string]interface{}{"width": 16.0, "height": 0.0, "wiring": "serpentine"},
	})
	assert.Equal(t, []string{"geometry"}, res.Rejected)
	assert.Equal(t, before, s.Snapshot().Geometry)

	res = s.Apply(map[string]interface{}{
		"geometry": map[string]interface{}{"width": 16.0, "height": 16.0, "wiring": "progressive"},
	})
	assert.Equal(t, []string{"geometry"}, res.Applied)
	assert.Equal(t, matrix.Geometry{Width: 16, Height: 16, Wiring: matrix.Progressive}, s.Snapshot().Geometry)
}

func TestParamsScopedPerPattern(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPattern("waves"))
	s.SetParams("waves", map[string]float64{"wave_count": 5})
	s.SetParams("shimmer", map[string]float64{"density": 0.2})

	snap := s.Snapshot()
	assert.Equal(t, 5.0, snap.Param("wave_count", 3))
	// Overrides for other patterns stay invisible.
	assert.Equal(t, 1.0, snap.Param("density", 1))

	require.NoError(t, s.SetPattern("shimmer"))
	snap = s.Snapshot()
	assert.Equal(t, 0.2, snap.Param("density", 1))
}

func TestApplyParamsTargetsActivePattern(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPattern("waves"))

	res := s.Apply(map[string]interface{}{
		"params": map[string]interface{}{"wave_count": 4.0},
	})
	assert.Equal(t, []string{"params"}, res.Applied)
	assert.Equal(t, map[string]float64{"wave_count": 4}, s.Params("waves"))
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetPattern("waves"))
	s.SetParams("waves", map[string]float64{"a": 1})

	snap := s.Snapshot()
	snap.Params["a"] = 99

	assert.Equal(t, 1.0, s.Snapshot().Param("a", 0), "snapshot mutation must not leak back")
}

func TestApplyPalette(t *testing.T) {
	s := NewStore()

	res := s.Apply(map[string]interface{}{
		"palette": []interface{}{"#ff0000", "#0000ff"},
	})
	assert.Equal(t, []string{"palette"}, res.Applied)
	pal := s.Snapshot().Palette
	require.Len(t, pal, 2)

	res = s.Apply(map[string]interface{}{
		"palette": []interface{}{"#ff0000"},
	})
	assert.Equal(t, []string{"palette"}, res.Rejected)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lightbox.json")

	s := NewStore()
	require.NoError(t, s.SetGeometry(matrix.Geometry{Width: 32, Height: 8, Wiring: matrix.Serpentine}))
	s.Apply(map[string]interface{}{"brightness": 0.25, "gamma": 1.8, "speed": 3.0})
	require.NoError(t, s.SetPattern("waves"))
	s.SetParams("waves", map[string]float64{"wave_count": 4})
	require.NoError(t, s.SaveFile(path))

	loaded := NewStore()
	require.NoError(t, loaded.LoadFile(path))

	snap := loaded.Snapshot()
	assert.Equal(t, matrix.Geometry{Width: 32, Height: 8, Wiring: matrix.Serpentine}, snap.Geometry)
	assert.Equal(t, 0.25, snap.Brightness)
	assert.Equal(t, 1.8, snap.Gamma)
	assert.Equal(t, 3.0, snap.Speed)
	assert.Equal(t, "waves", snap.Pattern)
	assert.Equal(t, 4.0, snap.Param("wave_count", 0))
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, writeFile(path, `{"geometry":{"width":0,"height":0,"wiring":"x"}}`))

	s := NewStore()
	before := s.Snapshot()
	assert.Error(t, s.LoadFile(path))
	assert.Equal(t, before, s.Snapshot(), "failed load must not touch the store")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
