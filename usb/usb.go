// Package usb commits frames to a Teensy-driven LED matrix over a libusb
// bulk endpoint.
package usb

import (
	"fmt"
	"log"

	"github.com/drichelson/libusb"

	"github.com/fieldjoshua/LightBox-2.0/frame"
)

const (
	teensyVendorID  = 5824
	teensyProductID = 1155

	bulkEndpoint      = 3
	transferTimeoutMs = 20
)

// Sink streams frames to the Teensy. It implements frame.Sink; the device
// applies pixels as they arrive, so Commit blocks for at most one bulk
// transfer timeout.
type Sink struct {
	ctx        *libusb.Context
	handle     *libusb.DeviceHandle
	data       []byte
	lastCount  int
	brightness float64
}

// Open claims the Teensy's bulk transfer interface.
func Open() (*Sink, error) {
	version := libusb.GetVersion()
	log.Printf("usb: libusb %d.%d.%d (%d)", version.Major, version.Minor, version.Micro, version.Nano)

	ctx, err := libusb.Init()
	if err != nil {
		return nil, fmt.Errorf("usb: init: %w", err)
	}
	_, handle, err := ctx.OpenDeviceWithVendorProduct(teensyVendorID, teensyProductID)
	if err != nil {
		return nil, fmt.Errorf("usb: open teensy %d:%d: %w", teensyVendorID, teensyProductID, err)
	}
	if err := handle.ClaimInterface(1); err != nil {
		handle.Close()
		return nil, fmt.Errorf("usb: claim bulk interface: %w", err)
	}
	return &Sink{ctx: ctx, handle: handle, brightness: 1.0}, nil
}

// Commit implements frame.Sink.
func (s *Sink) Commit(pixels []frame.RGB) error {
	s.lastCount = len(pixels)
	packet := s.encode(pixels)
	addr := libusb.EndpointAddress(byte(bulkEndpoint))
	if _, err := s.handle.BulkTransfer(addr, packet, len(packet), transferTimeoutMs); err != nil {
		return fmt.Errorf("usb: bulk transfer: %w", err)
	}
	return nil
}

// Blank implements frame.Sink: one all-dark frame at the last known size.
func (s *Sink) Blank() error {
	if s.lastCount == 0 {
		return nil
	}
	return s.Commit(make([]frame.RGB, s.lastCount))
}

// SetBrightness implements frame.Sink. The Teensy has no brightness
// register, so the scalar is folded into the channel bytes.
func (s *Sink) SetBrightness(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("usb: brightness %v outside [0,1]", v)
	}
	s.brightness = v
	return nil
}

// Close implements frame.Sink.
func (s *Sink) Close() error {
	s.handle.Close()
	return nil
}

// encode builds the wire packet, reusing the slice between frames.
func (s *Sink) encode(pixels []frame.RGB) []byte {
	need := len(pixels)*3 + 3
	if cap(s.data) < need {
		s.data = make([]byte, need)
	}
	s.data = s.data[:need]
	return encodeInto(s.data, pixels, s.brightness)
}

// encodeInto lays out the packet: '*', pixel count little endian, then
// brightness-scaled RGB bytes.
func encodeInto(data []byte, pixels []frame.RGB, brightness float64) []byte {
	data[0] = '*'
	data[1] = byte(len(pixels) & 0xff)
	data[2] = byte(len(pixels) >> 8)
	for i, px := range pixels {
		data[3*i+3] = scale(px.R, brightness)
		data[3*i+4] = scale(px.G, brightness)
		data[3*i+5] = scale(px.B, brightness)
	}
	return data
}

func scale(c uint8, brightness float64) uint8 {
	return uint8(float64(c) * brightness)
}
