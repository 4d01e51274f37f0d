// Package builtin ships the stock animation set. Each pattern is pure with
// respect to the frame: it derives everything from the configuration
// snapshot and the frame index, so a swap mid-run cannot desynchronize the
// loop.
package builtin

import (
	"log"

	"github.com/fieldjoshua/LightBox-2.0/pattern"
)

// NewRegistry builds a registry with cosmic as the permanent fallback and
// the rest of the stock set registered alongside.
func NewRegistry() *pattern.Registry {
	r := pattern.NewRegistry("cosmic", pattern.Func(Cosmic))
	register(r, "waves", pattern.Func(Waves))
	register(r, "shimmer", NewShimmer())
	register(r, "symmetry", pattern.Func(Symmetry))
	register(r, "parametric_waves", Parametric{})
	register(r, "noise", NewNoise())
	return r
}

func register(r *pattern.Registry, name string, p pattern.Pattern) {
	if err := r.Register(name, p); err != nil {
		log.Printf("builtin: %v", err)
	}
}
