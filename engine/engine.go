// Package engine runs the render scheduler: one goroutine that computes a
// frame per tick, commits it to the sink and holds the target frame rate.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	metrics "github.com/launchdarkly/go-metrics"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/palette"
	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// State is the scheduler lifecycle. Transitions run strictly forward:
// Initializing → Running → Stopping → Stopped.
type State int32

const (
	Initializing State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// fpsWindow is how many recent frame times feed the fps figure.
const fpsWindow = 30

// Engine owns the pixel buffer and render stats; nothing else writes them.
type Engine struct {
	store    *config.Store
	registry *pattern.Registry
	sink     frame.Sink
	interval time.Duration

	buf   *frame.Buffer
	out   []frame.RGB
	gamma *palette.GammaTable

	brightness  float64
	quarantined string
	warned      string

	reg        metrics.Registry
	frameTimer metrics.Timer

	state atomic.Int32
	start time.Time

	statsMu sync.Mutex
	stats   Stats
	window  [fpsWindow]time.Duration
	wIdx    int
	wLen    int
}

// Option tweaks an Engine at construction.
type Option func(*Engine)

// WithTargetFPS sets the frame rate the loop holds. Default 60.
func WithTargetFPS(fps float64) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.interval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// New wires a scheduler to its collaborators. Nothing is ambient: the
// store, registry and sink all arrive by reference.
func New(store *config.Store, registry *pattern.Registry, sink frame.Sink, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		registry: registry,
		sink:     sink,
		interval: time.Second / 60,
		reg:      metrics.NewRegistry(),
	}
	e.frameTimer = metrics.GetOrRegisterTimer("engine.frame.render", e.reg)
	e.state.Store(int32(Initializing))
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return State(e.state.Load()) }

// Run drives the loop until ctx is cancelled, then blanks the display and
// releases the sink. The only error it returns is a fatal initialization
// failure; pattern and sink failures are recovered per frame.
func (e *Engine) Run(ctx context.Context) error {
	if e.State() != Initializing {
		return fmt.Errorf("engine: Run called in state %s", e.State())
	}
	e.start = time.Now()

	snap := e.store.Snapshot()
	if err := snap.Geometry.Validate(); err != nil {
		e.state.Store(int32(Stopped))
		return fmt.Errorf("engine: %w", err)
	}
	e.buf = frame.NewBuffer(snap.Geometry)
	e.out = make([]frame.RGB, e.buf.Len())

	gamma, err := palette.NewGammaTable(snap.Gamma)
	if err != nil {
		e.state.Store(int32(Stopped))
		return fmt.Errorf("engine: %w", err)
	}
	e.gamma = gamma

	e.brightness = snap.Brightness
	if err := e.sink.SetBrightness(snap.Brightness); err != nil {
		log.Printf("engine: set brightness: %v", err)
	}

	e.state.Store(int32(Running))
	log.Printf("engine: running %dx%d %s at %.1f fps target",
		snap.Geometry.Width, snap.Geometry.Height, snap.Geometry.Wiring,
		float64(time.Second)/float64(e.interval))

	var frameIndex uint64
	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return nil
		default:
		}

		iterStart := time.Now()
		snap := e.store.Snapshot()
		e.syncGeometry(snap)
		e.syncGamma(snap)
		e.syncBrightness(snap)

		active := e.renderFrame(snap, frameIndex)

		if err := e.sink.Commit(e.out); err != nil {
			// Drop the frame and keep the cadence; retrying would skew
			// timing for every subsequent frame.
			log.Printf("engine: sink rejected frame %d: %v", frameIndex, err)
		}
		rendered := time.Since(iterStart)
		e.frameTimer.Update(rendered)

		if wait := e.interval - rendered; wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				e.recordFrame(time.Since(iterStart), active, frameIndex+1)
				e.shutdown()
				return nil
			case <-t.C:
			}
		}
		frameIndex++
		e.recordFrame(time.Since(iterStart), active, frameIndex)

		if frameIndex%1000 == 0 {
			snap := e.frameTimer.Snapshot()
			log.Printf("engine: frame %d render p50 %.2fms p95 %.2fms",
				frameIndex,
				snap.Percentile(0.5)/float64(time.Millisecond),
				snap.Percentile(0.95)/float64(time.Millisecond))
		}
	}
}

// renderFrame resolves the active pattern, invokes it inside a recover
// boundary and finalizes the buffer. It returns the name of the pattern
// that actually painted the frame.
func (e *Engine) renderFrame(snap config.Snapshot, frameIndex uint64) string {
	name := snap.Pattern
	p, ok := e.registry.Get(name)
	switch {
	case !ok:
		if e.warned != name {
			log.Printf("engine: pattern %q not registered, substituting fallback", name)
			e.warned = name
		}
		name, p = e.registry.Fallback()
	case name == e.quarantined:
		name, p = e.registry.Fallback()
	default:
		// A fresh valid selection lifts any previous quarantine.
		e.quarantined = ""
	}

	if !e.invoke(p, snap, frameIndex, name) {
		e.quarantined = snap.Pattern
		fbName, fb := e.registry.Fallback()
		name = fbName
		if !e.invoke(fb, snap, frameIndex, fbName) {
			// Fallback misbehaving too; emit black rather than garbage.
			e.buf.Clear()
		}
	}

	e.buf.Finalize(e.gamma, e.out)
	return name
}

// invoke runs one pattern call and confines any panic to this frame.
func (e *Engine) invoke(p pattern.Pattern, snap config.Snapshot, frameIndex uint64, name string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: pattern %q panicked at frame %d: %v", name, frameIndex, r)
			ok = false
		}
	}()
	p.Render(e.buf, snap, frameIndex)
	return true
}

func (e *Engine) syncGeometry(snap config.Snapshot) {
	if snap.Geometry == e.buf.Geometry() {
		return
	}
	if err := snap.Geometry.Validate(); err != nil {
		log.Printf("engine: ignoring geometry change: %v", err)
		return
	}
	log.Printf("engine: geometry now %dx%d %s",
		snap.Geometry.Width, snap.Geometry.Height, snap.Geometry.Wiring)
	e.buf = frame.NewBuffer(snap.Geometry)
	e.out = make([]frame.RGB, e.buf.Len())
}

func (e *Engine) syncGamma(snap config.Snapshot) {
	if snap.Gamma == e.gamma.Exponent() {
		return
	}
	gamma, err := palette.NewGammaTable(snap.Gamma)
	if err != nil {
		log.Printf("engine: ignoring gamma change: %v", err)
		return
	}
	e.gamma = gamma
}

func (e *Engine) syncBrightness(snap config.Snapshot) {
	if snap.Brightness == e.brightness {
		return
	}
	e.brightness = snap.Brightness
	if err := e.sink.SetBrightness(snap.Brightness); err != nil {
		log.Printf("engine: set brightness: %v", err)
	}
}

// shutdown blanks the display before releasing the sink so the matrix is
// never left lit.
func (e *Engine) shutdown() {
	e.state.Store(int32(Stopping))
	e.buf.Clear()
	e.buf.Finalize(e.gamma, e.out)
	if err := e.sink.Commit(e.out); err != nil {
		log.Printf("engine: final blank commit: %v", err)
	}
	if err := e.sink.Blank(); err != nil {
		log.Printf("engine: blank: %v", err)
	}
	if err := e.sink.Close(); err != nil {
		log.Printf("engine: close sink: %v", err)
	}
	e.state.Store(int32(Stopped))
	log.Printf("engine: stopped after %d frames", e.Stats().FrameCount)
}
