// Package pattern defines the single capability an animation must provide
// and the registry the scheduler resolves pattern names through.
package pattern

import (
	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
)

// Pattern paints one frame. The buffer is owned by the scheduler, the
// snapshot is immutable for the duration of the call, and frameIndex grows
// monotonically. A pattern fills every pixel it is responsible for and
// keeps no reference to the buffer after returning.
type Pattern interface {
	Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64)
}

// Func adapts a plain function to the Pattern capability.
type Func func(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64)

// Render implements Pattern.
func (f Func) Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	f(buf, cfg, frameIndex)
}

// ParamSpec describes one tunable parameter a pattern declares for the
// control surface. The engine only exposes the schema; validation is the
// control surface's job.
type ParamSpec struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Default     float64 `json:"default"`
	Description string  `json:"description"`
}

// ParamProvider is implemented by patterns that declare a parameter schema.
type ParamProvider interface {
	Params() []ParamSpec
}
