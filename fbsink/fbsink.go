// Package fbsink previews the matrix on a Linux framebuffer. It is the
// simulator target: each LED becomes a block of framebuffer pixels, so an
// animation can be eyeballed on any console without LED hardware.
package fbsink

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/fieldjoshua/LightBox-2.0/frame"
	"github.com/fieldjoshua/LightBox-2.0/matrix"
)

// Sink renders committed frames onto a framebuffer device.
type Sink struct {
	dev        *fb.Device
	geom       matrix.Geometry
	img        *image.RGBA
	brightness float64
}

// Open maps the framebuffer (typically /dev/fb0) and prepares a logical
// canvas sized to the matrix.
func Open(device string, geom matrix.Geometry) (*Sink, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	dev, err := fb.Open(device)
	if err != nil {
		return nil, fmt.Errorf("fbsink: open %s: %w", device, err)
	}
	return &Sink{
		dev:        dev,
		geom:       geom,
		img:        image.NewRGBA(image.Rect(0, 0, geom.Width, geom.Height)),
		brightness: 1.0,
	}, nil
}

// Commit implements frame.Sink: unmap the strip back onto the matrix and
// stretch it over the whole framebuffer.
func (s *Sink) Commit(pixels []frame.RGB) error {
	if len(pixels) != s.geom.PixelCount() {
		// Geometry changed under us; fall back to a single-row layout
		// until reconfigured.
		s.geom = matrix.Geometry{Width: len(pixels), Height: 1, Wiring: matrix.Progressive}
		s.img = image.NewRGBA(image.Rect(0, 0, s.geom.Width, 1))
	}
	renderInto(s.img, pixels, s.geom, s.brightness)
	xdraw.NearestNeighbor.Scale(s.dev, s.dev.Bounds(), s.img, s.img.Bounds(), xdraw.Src, nil)
	return nil
}

// Blank implements frame.Sink.
func (s *Sink) Blank() error {
	draw.Draw(s.dev, s.dev.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return nil
}

// SetBrightness implements frame.Sink.
func (s *Sink) SetBrightness(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("fbsink: brightness %v outside [0,1]", v)
	}
	s.brightness = v
	return nil
}

// Close implements frame.Sink.
func (s *Sink) Close() error {
	return s.Blank()
}

func renderInto(img *image.RGBA, pixels []frame.RGB, geom matrix.Geometry, brightness float64) {
	for i, px := range pixels {
		x, y, err := geom.IndexToXY(i)
		if err != nil {
			continue
		}
		img.SetRGBA(x, y, color.RGBA{
			R: uint8(float64(px.R) * brightness),
			G: uint8(float64(px.G) * brightness),
			B: uint8(float64(px.B) * brightness),
			A: 255,
		})
	}
}
