package asr

import (
	"sync/atomic"
	"testing"
	"time"
)

type stubModel struct {
	calls   int32
	text    string
	entered chan struct{} // if set, receives one token as each Run begins
	gate    chan struct{} // if set, Run blocks on it before returning
	last    []float32
}

func (s *stubModel) Run(samples []float32, language string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	s.last = samples
	return s.text, nil
}

func TestDrainPolicyFinalPreemptsQueuedPartials(t *testing.T) {
	stub := &stubModel{text: "final text", entered: make(chan struct{}, 4), gate: make(chan struct{})}
	w := newWorkerWithModel(stub)
	defer w.Shutdown()

	// Occupy the worker with a job blocked inside the stub, then queue
	// P P P F in the mailbox before releasing it, so the whole batch is
	// present when the drain runs.
	w.Final([]float32{0})
	<-stub.entered
	w.Partial([]float32{1})
	w.Partial([]float32{2})
	w.Partial([]float32{3})
	w.Final([]float32{4})
	close(stub.gate)

	for i := 0; i < 2; i++ {
		select {
		case resp := <-w.FinalChan():
			if resp.Kind != FinalComplete {
				t.Fatalf("expected FinalComplete, got %v", resp.Kind)
			}
			if resp.Text != "final text" {
				t.Fatalf("unexpected text %q", resp.Text)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for FinalComplete")
		}
	}

	select {
	case p := <-w.PartialChan():
		t.Fatalf("expected zero partials, got %q", p)
	default:
	}
	if got := atomic.LoadInt32(&stub.calls); got != 2 {
		t.Fatalf("expected 2 inference runs (occupier + final), got %d", got)
	}
}

func TestDrainPolicyRunsLatestPartialWhenNoFinal(t *testing.T) {
	stub := &stubModel{text: "hello", entered: make(chan struct{}, 4), gate: make(chan struct{})}
	w := newWorkerWithModel(stub)
	defer w.Shutdown()

	// The first Partial occupies the worker; the next three queue behind it
	// and must collapse to a single run of the newest samples.
	w.Partial([]float32{0})
	<-stub.entered
	w.Partial([]float32{1})
	w.Partial([]float32{2})
	w.Partial([]float32{3})
	close(stub.gate)

	for i := 0; i < 2; i++ {
		select {
		case p := <-w.PartialChan():
			if p != "hello" {
				t.Fatalf("unexpected partial %q", p)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for partial")
		}
	}

	select {
	case p := <-w.PartialChan():
		t.Fatalf("expected exactly two partials (occupier + drained batch), got extra %q", p)
	default:
	}
	if got := atomic.LoadInt32(&stub.calls); got != 2 {
		t.Fatalf("expected 2 inference runs, got %d", got)
	}
	if len(stub.last) != 1 || stub.last[0] != 3 {
		t.Fatalf("expected the drained batch to run the newest samples, got %v", stub.last)
	}
}

func TestModelNotLoadedError(t *testing.T) {
	w := NewWorker()
	defer w.Shutdown()

	w.Final([]float32{1, 2, 3})
	resp := <-w.FinalChan()
	if resp.Err == nil {
		t.Fatal("expected error when no model loaded")
	}
}

func TestLoadModelReportsError(t *testing.T) {
	w := NewWorker()
	defer w.Shutdown()

	w.LoadModel("/nonexistent/path/model.bin")
	resp := <-w.FinalChan()
	if resp.Kind != ModelLoaded {
		t.Fatalf("expected ModelLoaded, got %v", resp.Kind)
	}
	if resp.Err == nil {
		t.Fatal("expected error loading nonexistent model")
	}
}

func TestSetLanguageDoesNotBlockWorker(t *testing.T) {
	stub := &stubModel{text: "x"}
	w := newWorkerWithModel(stub)
	defer w.Shutdown()

	w.SetLanguage("es")
	w.Final([]float32{1})
	resp := <-w.FinalChan()
	if resp.Err != nil {
		t.Fatalf("unexpected error: %v", resp.Err)
	}
}
