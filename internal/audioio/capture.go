package audioio

import "sync"

// backend abstracts the actual capture hardware so Capture can be exercised
// in tests without a real microphone.
type backend interface {
	Open() error
	Start() error
	Stop()
	SampleRate() int
}

type malgoBackend struct {
	device *Device
}

func (m *malgoBackend) Open() error  { return nil }
func (m *malgoBackend) Start() error { return m.device.Start() }
func (m *malgoBackend) Stop()        { m.device.Stop() }
func (m *malgoBackend) SampleRate() int {
	return m.device.SampleRate()
}

// Capture is the Controller-facing handle for C1: New opens the default
// input device, Start begins streaming into an internal Buffer, Snapshot
// copies the buffer without consuming it, and Stop tears the stream down
// and returns (consumes) whatever remained.
type Capture struct {
	mu      sync.Mutex
	backend backend
	buffer  *Buffer
	started bool
}

// New opens the platform's default input device. Returns ErrNoDevice if
// none is available.
func New() (*Capture, error) {
	buf := NewBuffer()
	device, err := NewDevice(buf)
	if err != nil {
		return nil, err
	}
	return &Capture{backend: &malgoBackend{device: device}, buffer: buf}, nil
}

// newWithBackend is the test-only constructor letting a fake backend and
// buffer stand in for real hardware.
func newWithBackend(b backend, buf *Buffer) *Capture {
	return &Capture{backend: b, buffer: buf}
}

// Start begins streaming. Returns an error wrapping whatever the backend
// reports (permission denial, unsupported format, etc).
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	if err := c.backend.Start(); err != nil {
		return err
	}
	c.started = true
	return nil
}

// Snapshot returns a copy of the buffer's current contents at 16 kHz
// without consuming it.
func (c *Capture) Snapshot() []float32 {
	return c.buffer.Snapshot()
}

// Stop ends capture, releases the device, and returns (consumes) whatever
// samples remained in the buffer, already resampled to 16 kHz.
func (c *Capture) Stop() []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		c.backend.Stop()
		c.started = false
	}
	return c.buffer.Take()
}
