// Package config holds the runtime configuration shared between the render
// loop and the control surface. The store is the only cross-thread mutable
// state in the system: the scheduler reads an immutable snapshot once per
// frame, the control surface applies updates field by field.
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fieldjoshua/LightBox-2.0/matrix"
	"github.com/fieldjoshua/LightBox-2.0/palette"
)

// Defaults for a fresh store.
const (
	DefaultBrightness = 0.8
	DefaultGamma      = 2.2
	DefaultSpeed      = 1.0
	DefaultIntensity  = 1.0
	DefaultScale      = 1.0
	DefaultPattern    = "cosmic"
)

var defaultGeometry = matrix.Geometry{Width: 10, Height: 10, Wiring: matrix.Serpentine}

// Snapshot is the immutable per-frame view of the configuration. Patterns
// receive it by value; a concurrent update can never tear a frame.
type Snapshot struct {
	Geometry   matrix.Geometry
	Brightness float64
	Gamma      float64
	Speed      float64
	Intensity  float64
	Scale      float64
	Pattern    string
	Palette    palette.Palette
	// Params holds the overrides for the active pattern only.
	Params map[string]float64
}

// Param returns an override for the active pattern, or def when unset.
func (s Snapshot) Param(name string, def float64) float64 {
	if v, ok := s.Params[name]; ok {
		return v
	}
	return def
}

// Store is the process-wide configuration state. All access goes through
// the mutex; there is no ambient singleton, main constructs one and passes
// it around.
type Store struct {
	mu         sync.RWMutex
	geometry   matrix.Geometry
	brightness float64
	gamma      float64
	speed      float64
	intensity  float64
	scale      float64
	pattern    string
	pal        palette.Palette
	params     map[string]map[string]float64
}

// NewStore returns a store with the default configuration.
func NewStore() *Store {
	return &Store{
		geometry:   defaultGeometry,
		brightness: DefaultBrightness,
		gamma:      DefaultGamma,
		speed:      DefaultSpeed,
		intensity:  DefaultIntensity,
		scale:      DefaultScale,
		pattern:    DefaultPattern,
		pal:        palette.Default(),
		params:     make(map[string]map[string]float64),
	}
}

// Snapshot returns a copy-on-read view of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var params map[string]float64
	if p := s.params[s.pattern]; len(p) > 0 {
		params = make(map[string]float64, len(p))
		for k, v := range p {
			params[k] = v
		}
	}
	return Snapshot{
		Geometry:   s.geometry,
		Brightness: s.brightness,
		Gamma:      s.gamma,
		Speed:      s.speed,
		Intensity:  s.intensity,
		Scale:      s.scale,
		Pattern:    s.pattern,
		Palette:    s.pal,
		Params:     params,
	}
}

// Result reports the outcome of one Apply call, field by field.
type Result struct {
	Applied  []string `json:"applied"`
	Rejected []string `json:"rejected"`
}

// Apply updates the store from a field→value mapping. Unknown or invalid
// fields are rejected individually; the remaining fields still apply.
// Geometry is all-or-nothing: a partially valid geometry rejects the whole
// "geometry" field. The next frame boundary picks the changes up.
func (s *Store) Apply(update map[string]interface{}) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res Result
	// Deterministic order keeps logs and responses stable.
	fields := make([]string, 0, len(update))
	for f := range update {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if err := s.applyField(field, update[field]); err != nil {
			res.Rejected = append(res.Rejected, field)
		} else {
			res.Applied = append(res.Applied, field)
		}
	}
	return res
}

func (s *Store) applyField(field string, value interface{}) error {
	switch field {
	case "brightness":
		return setUnit(&s.brightness, value)
	case "intensity":
		return setUnit(&s.intensity, value)
	case "gamma":
		v, err := asFloat(value)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("config: gamma must be > 0, got %v", v)
		}
		s.gamma = v
		return nil
	case "speed":
		v, err := asFloat(value)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("config: speed must be >= 0, got %v", v)
		}
		s.speed = v
		return nil
	case "scale":
		v, err := asFloat(value)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("config: scale must be > 0, got %v", v)
		}
		s.scale = v
		return nil
	case "pattern":
		name, ok := value.(string)
		if !ok || name == "" {
			return fmt.Errorf("config: pattern must be a non-empty string")
		}
		s.pattern = name
		return nil
	case "palette":
		pal, err := asPalette(value)
		if err != nil {
			return err
		}
		s.pal = pal
		return nil
	case "geometry":
		geom, err := asGeometry(value)
		if err != nil {
			return err
		}
		s.geometry = geom
		return nil
	case "params":
		vals, err := asParams(value)
		if err != nil {
			return err
		}
		s.mergeParams(s.pattern, vals)
		return nil
	default:
		return fmt.Errorf("config: unknown field %q", field)
	}
}

// SetPattern switches the active pattern name.
func (s *Store) SetPattern(name string) error {
	if name == "" {
		return fmt.Errorf("config: pattern must be a non-empty string")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pattern = name
	return nil
}

// ActivePattern returns the configured pattern name.
func (s *Store) ActivePattern() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pattern
}

// SetParams merges parameter overrides for the named pattern.
func (s *Store) SetParams(pattern string, vals map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeParams(pattern, vals)
}

// Params returns a copy of the overrides scoped to the named pattern.
func (s *Store) Params(pattern string) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.params[pattern]))
	for k, v := range s.params[pattern] {
		out[k] = v
	}
	return out
}

// SetGeometry replaces the matrix geometry. All-or-nothing: an invalid
// geometry leaves the current one untouched.
func (s *Store) SetGeometry(geom matrix.Geometry) error {
	if err := geom.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = geom
	return nil
}

// SetPalette replaces the palette wholesale.
func (s *Store) SetPalette(p palette.Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pal = p
}

func (s *Store) mergeParams(pattern string, vals map[string]float64) {
	if len(vals) == 0 {
		return
	}
	m := s.params[pattern]
	if m == nil {
		m = make(map[string]float64, len(vals))
		s.params[pattern] = m
	}
	for k, v := range vals {
		m[k] = v
	}
}

func setUnit(dst *float64, value interface{}) error {
	v, err := asFloat(value)
	if err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("config: value %v outside [0,1]", v)
	}
	*dst = v
	return nil
}

func asFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("config: %T is not a number", value)
	}
}

func asParams(value interface{}) (map[string]float64, error) {
	switch vals := value.(type) {
	case map[string]float64:
		return vals, nil
	case map[string]interface{}:
		out := make(map[string]float64, len(vals))
		for k, raw := range vals {
			f, err := asFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("config: param %q: %w", k, err)
			}
			out[k] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("config: params must be a name→number mapping, got %T", value)
	}
}

func asPalette(value interface{}) (palette.Palette, error) {
	switch v := value.(type) {
	case palette.Palette:
		return v, nil
	case []string:
		return palette.ParseHex(v...)
	case []interface{}:
		hexes := make([]string, len(v))
		for i, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("config: palette entry %d is %T, want hex string", i, raw)
			}
			hexes[i] = s
		}
		return palette.ParseHex(hexes...)
	default:
		return nil, fmt.Errorf("config: palette must be a list of hex colors, got %T", value)
	}
}

func asGeometry(value interface{}) (matrix.Geometry, error) {
	switch v := value.(type) {
	case matrix.Geometry:
		if err := v.Validate(); err != nil {
			return matrix.Geometry{}, err
		}
		return v, nil
	case map[string]interface{}:
		var geom matrix.Geometry
		w, err := asFloat(v["width"])
		if err != nil {
			return matrix.Geometry{}, fmt.Errorf("config: geometry width: %w", err)
		}
		h, err := asFloat(v["height"])
		if err != nil {
			return matrix.Geometry{}, fmt.Errorf("config: geometry height: %w", err)
		}
		wiring, ok := v["wiring"].(string)
		if !ok {
			return matrix.Geometry{}, fmt.Errorf("config: geometry wiring must be a string")
		}
		geom = matrix.Geometry{Width: int(w), Height: int(h), Wiring: matrix.Topology(wiring)}
		if err := geom.Validate(); err != nil {
			return matrix.Geometry{}, err
		}
		return geom, nil
	default:
		return matrix.Geometry{}, fmt.Errorf("config: geometry must be an object, got %T", value)
	}
}
