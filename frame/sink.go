package frame

import "sync"

// Sink commits finished frames to an output device. Commit may block until
// the device has accepted the previous frame. Implementations must not
// retain the pixel slice beyond the call; the scheduler reuses it.
type Sink interface {
	Commit(pixels []RGB) error
	// Blank drives every LED dark. Called once at shutdown so the display
	// is never left in an arbitrary lit state.
	Blank() error
	// SetBrightness sets the device-level brightness scalar in [0,1].
	SetBrightness(v float64) error
	Close() error
}

// Discard is a Sink that drops every frame. Useful when no output device
// is attached.
type Discard struct{}

func (Discard) Commit(pixels []RGB) error     { return nil }
func (Discard) Blank() error                  { return nil }
func (Discard) SetBrightness(v float64) error { return nil }
func (Discard) Close() error                  { return nil }

// Capture is a Sink for tests: it copies every committed frame and records
// calls. CommitErr, when set, is returned from Commit to simulate a device
// failure.
type Capture struct {
	mu         sync.Mutex
	last       []RGB
	commits    int
	blanks     int
	brightness float64
	CommitErr  error
}

func (c *Capture) Commit(pixels []RGB) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CommitErr != nil {
		return c.CommitErr
	}
	c.last = append(c.last[:0], pixels...)
	c.commits++
	return nil
}

func (c *Capture) Blank() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blanks++
	return nil
}

func (c *Capture) SetBrightness(v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brightness = v
	return nil
}

func (c *Capture) Close() error { return nil }

// Last returns a copy of the most recently committed frame.
func (c *Capture) Last() []RGB {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RGB, len(c.last))
	copy(out, c.last)
	return out
}

// Commits returns how many frames were accepted.
func (c *Capture) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

// Blanks returns how many times Blank was called.
func (c *Capture) Blanks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blanks
}

// Brightness returns the last value passed to SetBrightness.
func (c *Capture) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brightness
}
