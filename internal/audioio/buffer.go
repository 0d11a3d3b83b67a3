// Package audioio implements audio capture and the level meter: a
// mutex-guarded growable PCM buffer fed by a platform capture callback,
// resampling, down-mixing, and RMS bar computation.
package audioio

import "sync"

// Buffer is a growable ordered sequence of float32 mono samples at 16 kHz.
// A capture callback appends to the tail under mu; readers take a copy. It
// is exclusively owned by the Controller for its lifetime (created when
// recording starts, taken/dropped when recording stops or is cancelled).
type Buffer struct {
	mu      sync.Mutex
	samples []float32
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds samples to the tail. Called only from the capture callback.
func (b *Buffer) Append(samples []float32) {
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	b.mu.Unlock()
}

// Snapshot returns a copy of the buffer's current contents without
// consuming it, used by the partial-ASR loop and the level meter.
func (b *Buffer) Snapshot() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Take empties the buffer and returns everything that was in it, used when
// recording stops and the final ASR job is built.
func (b *Buffer) Take() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.samples
	b.samples = nil
	return out
}

// Len reports the current sample count.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
