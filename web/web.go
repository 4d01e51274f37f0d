// Package web is the HTTP control surface: it reports render status and
// lets an operator switch patterns and edit parameters while the loop runs.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/macaron.v1"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/engine"
	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// Server exposes the control channel over HTTP. It only ever calls the
// store's Apply/Snapshot surface and the engine's read-only Stats, so it
// can never block the render loop.
type Server struct {
	store    *config.Store
	registry *pattern.Registry
	engine   *engine.Engine
	// ConfigPath, when set, is where /save and /load persist the
	// configuration.
	ConfigPath string
}

// New wires the control surface to its collaborators.
func New(store *config.Store, registry *pattern.Registry, eng *engine.Engine) *Server {
	return &Server{store: store, registry: registry, engine: eng}
}

// Handler builds the route table.
func (s *Server) Handler() *macaron.Macaron {
	m := macaron.Classic()

	m.Get("/status", s.getStatus)
	m.Get("/patterns", s.getPatterns)
	m.Get("/pattern", s.getSetPattern)

	// Unit-range knobs follow the thousandths convention: state=850
	// means 0.85.
	m.Get("/brightness", s.unitVar("brightness"))
	m.Get("/intensity", s.unitVar("intensity"))

	m.Get("/gamma", s.floatVar("gamma"))
	m.Get("/speed", s.floatVar("speed"))
	m.Get("/scale", s.floatVar("scale"))

	m.Get("/palette", s.getSetPalette)
	m.Get("/params", s.getParams)
	m.Post("/params", s.postParams)
	m.Post("/config", s.postConfig)
	m.Post("/save", s.postSave)
	m.Post("/load", s.postLoad)

	return m
}

// Run serves the control surface until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("web: control surface on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) getStatus(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	data, _ := json.Marshal(s.engine.Stats())
	return string(data)
}

func (s *Server) getPatterns(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	data, _ := json.Marshal(s.registry.List())
	return string(data)
}

// Generic handler shape for getting/setting a value, in one route:
// GET without query returns the value, GET with ?state= sets it.
func (s *Server) getSetPattern(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	name := ctx.Query("state")
	if name == "" {
		return fmt.Sprintf(`{"state": %q}`, s.store.ActivePattern())
	}
	if _, ok := s.registry.Get(name); !ok {
		ctx.Resp.WriteHeader(http.StatusNotFound)
		return fmt.Sprintf(`{"error": "unknown pattern %q"}`, name)
	}
	if err := s.store.SetPattern(name); err != nil {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return fmt.Sprintf(`{"state": %q}`, name)
}

func (s *Server) unitVar(field string) func(ctx *macaron.Context) string {
	return func(ctx *macaron.Context) string {
		ctx.Header().Set("Content-Type", "application/json")
		raw := ctx.Query("state")
		if raw == "" {
			return fmt.Sprintf(`{"state": "%d"}`, int(s.snapshotField(field)*1000.0))
		}
		thousandths, err := strconv.Atoi(raw)
		if err != nil {
			ctx.Resp.WriteHeader(http.StatusBadRequest)
			return `{"error": "not a number"}`
		}
		res := s.store.Apply(map[string]interface{}{field: float64(thousandths) / 1000.0})
		if len(res.Rejected) > 0 {
			ctx.Resp.WriteHeader(http.StatusBadRequest)
			return fmt.Sprintf(`{"error": "rejected %s"}`, field)
		}
		return fmt.Sprintf(`{"state": %q}`, raw)
	}
}

func (s *Server) floatVar(field string) func(ctx *macaron.Context) string {
	return func(ctx *macaron.Context) string {
		ctx.Header().Set("Content-Type", "application/json")
		raw := ctx.Query("state")
		if raw == "" {
			return fmt.Sprintf(`{"state": "%g"}`, s.snapshotField(field))
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ctx.Resp.WriteHeader(http.StatusBadRequest)
			return `{"error": "not a number"}`
		}
		res := s.store.Apply(map[string]interface{}{field: v})
		if len(res.Rejected) > 0 {
			ctx.Resp.WriteHeader(http.StatusBadRequest)
			return fmt.Sprintf(`{"error": "rejected %s"}`, field)
		}
		return fmt.Sprintf(`{"state": %q}`, raw)
	}
}

func (s *Server) snapshotField(field string) float64 {
	snap := s.store.Snapshot()
	switch field {
	case "brightness":
		return snap.Brightness
	case "intensity":
		return snap.Intensity
	case "gamma":
		return snap.Gamma
	case "speed":
		return snap.Speed
	case "scale":
		return snap.Scale
	default:
		return 0
	}
}

func (s *Server) getSetPalette(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	raw := ctx.Query("state")
	if raw == "" {
		var hexes []string
		for _, stop := range s.store.Snapshot().Palette {
			hexes = append(hexes, stop.Color.Hex())
		}
		data, _ := json.Marshal(hexes)
		return string(data)
	}
	hexes := strings.Split(raw, ",")
	res := s.store.Apply(map[string]interface{}{"palette": hexes})
	if len(res.Rejected) > 0 {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return `{"error": "bad palette"}`
	}
	data, _ := json.Marshal(hexes)
	return string(data)
}

type paramsResponse struct {
	Pattern string              `json:"pattern"`
	Schema  []pattern.ParamSpec `json:"schema"`
	Values  map[string]float64  `json:"values"`
}

func (s *Server) getParams(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	name := ctx.Query("pattern")
	if name == "" {
		name = s.store.ActivePattern()
	}
	if _, ok := s.registry.Get(name); !ok {
		ctx.Resp.WriteHeader(http.StatusNotFound)
		return fmt.Sprintf(`{"error": "unknown pattern %q"}`, name)
	}
	data, _ := json.Marshal(paramsResponse{
		Pattern: name,
		Schema:  s.registry.Params(name),
		Values:  s.store.Params(name),
	})
	return string(data)
}

type paramsUpdate struct {
	Pattern string                 `json:"pattern"`
	Values  map[string]interface{} `json:"values"`
}

func (s *Server) postParams(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	body, err := ctx.Req.Body().Bytes()
	if err != nil {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return `{"error": "unreadable body"}`
	}
	var update paramsUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return `{"error": "bad json"}`
	}
	name := update.Pattern
	if name == "" {
		name = s.store.ActivePattern()
	}

	var res config.Result
	accepted := make(map[string]float64, len(update.Values))
	for k, raw := range update.Values {
		if v, ok := asNumber(raw); ok {
			accepted[k] = v
			res.Applied = append(res.Applied, k)
		} else {
			res.Rejected = append(res.Rejected, k)
		}
	}
	s.store.SetParams(name, accepted)

	data, _ := json.Marshal(res)
	return string(data)
}

func (s *Server) postConfig(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	body, err := ctx.Req.Body().Bytes()
	if err != nil {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return `{"error": "unreadable body"}`
	}
	var update map[string]interface{}
	if err := json.Unmarshal(body, &update); err != nil {
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return `{"error": "bad json"}`
	}
	res := s.store.Apply(update)
	data, _ := json.Marshal(res)
	return string(data)
}

func (s *Server) postSave(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	if s.ConfigPath == "" {
		ctx.Resp.WriteHeader(http.StatusConflict)
		return `{"error": "no config path configured"}`
	}
	if err := s.store.SaveFile(s.ConfigPath); err != nil {
		ctx.Resp.WriteHeader(http.StatusInternalServerError)
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return `{"ok": true}`
}

func (s *Server) postLoad(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	if s.ConfigPath == "" {
		ctx.Resp.WriteHeader(http.StatusConflict)
		return `{"error": "no config path configured"}`
	}
	if err := s.store.LoadFile(s.ConfigPath); err != nil {
		ctx.Resp.WriteHeader(http.StatusInternalServerError)
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return `{"ok": true}`
}

func asNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
