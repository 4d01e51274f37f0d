package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fieldjoshua/LightBox-2.0/matrix"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

// persisted is the on-disk shape of the configuration. Palettes persist as
// hex colors; stop positions stay evenly spaced.
type persisted struct {
	Geometry   matrix.Geometry               `json:"geometry"`
	Brightness float64                       `json:"brightness"`
	Gamma      float64                       `json:"gamma"`
	Speed      float64                       `json:"speed"`
	Intensity  float64                       `json:"intensity"`
	Scale      float64                       `json:"scale"`
	Pattern    string                        `json:"pattern"`
	Palette    []string                      `json:"palette"`
	Params     map[string]map[string]float64 `json:"params,omitempty"`
}

// SaveFile serializes the current state to path.
func (s *Store) SaveFile(path string) error {
	s.mu.RLock()
	rec := persisted{
		Geometry:   s.geometry,
		Brightness: s.brightness,
		Gamma:      s.gamma,
		Speed:      s.speed,
		Intensity:  s.intensity,
		Scale:      s.scale,
		Pattern:    s.pattern,
		Params:     make(map[string]map[string]float64, len(s.params)),
	}
	for _, stop := range s.pal {
		rec.Palette = append(rec.Palette, stop.Color.Hex())
	}
	for name, vals := range s.params {
		m := make(map[string]float64, len(vals))
		for k, v := range vals {
			m[k] = v
		}
		rec.Params[name] = m
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile applies a previously saved configuration. Each field validates
// like an Apply call; a corrupt file fails as a whole before anything is
// touched.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rec persisted
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := rec.Geometry.Validate(); err != nil {
		return err
	}
	pal, err := palette.ParseHex(rec.Palette...)
	if err != nil {
		return err
	}
	if rec.Gamma <= 0 {
		return fmt.Errorf("config: persisted gamma must be > 0, got %v", rec.Gamma)
	}
	if rec.Pattern == "" {
		return fmt.Errorf("config: persisted pattern is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = rec.Geometry
	s.brightness = clampUnit(rec.Brightness)
	s.gamma = rec.Gamma
	s.speed = rec.Speed
	s.intensity = clampUnit(rec.Intensity)
	if rec.Scale > 0 {
		s.scale = rec.Scale
	}
	s.pattern = rec.Pattern
	s.pal = pal
	s.params = make(map[string]map[string]float64, len(rec.Params))
	for name, vals := range rec.Params {
		m := make(map[string]float64, len(vals))
		for k, v := range vals {
			m[k] = v
		}
		s.params[name] = m
	}
	return nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
