package audioio

import "testing"

type fakeBackend struct {
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeBackend) Open() error     { return nil }
func (f *fakeBackend) Start() error    { f.started = true; return f.startErr }
func (f *fakeBackend) Stop()           { f.stopped = true }
func (f *fakeBackend) SampleRate() int { return 16000 }

func TestCaptureStartStop(t *testing.T) {
	buf := NewBuffer()
	fb := &fakeBackend{}
	c := newWithBackend(fb, buf)

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	if !fb.started {
		t.Fatal("expected backend Start to be called")
	}

	buf.Append([]float32{0.1, 0.2, 0.3})
	snap := c.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 samples in snapshot, got %d", len(snap))
	}

	remaining := c.Stop()
	if !fb.stopped {
		t.Fatal("expected backend Stop to be called")
	}
	if len(remaining) != 3 {
		t.Fatalf("expected 3 remaining samples, got %d", len(remaining))
	}
	if buf.Len() != 0 {
		t.Fatal("expected buffer to be emptied by Stop")
	}
}

func TestCaptureStartPropagatesError(t *testing.T) {
	fb := &fakeBackend{startErr: errNoDeviceForTest}
	c := newWithBackend(fb, NewBuffer())
	if err := c.Start(); err != errNoDeviceForTest {
		t.Fatalf("expected error propagated, got %v", err)
	}
}

var errNoDeviceForTest = ErrNoDevice
