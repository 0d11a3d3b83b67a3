// Package asr implements the ASR worker: a single background worker owning
// one loaded whisper.cpp model, serving LoadModel/Final/Partial requests
// under a drain policy that always prefers a final transcription over a
// stale interim one.
package asr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// ErrModelNotLoaded is returned by Run when no model has been loaded yet.
var ErrModelNotLoaded = errors.New("asr: no model loaded")

// Model wraps a loaded whisper.cpp model. It is opaque to callers beyond
// Load and Run; exactly one Model exists inside Worker at a time, and
// LoadModel atomically replaces the prior one.
type Model struct {
	inner whisperlib.Model
}

// Load opens a whisper.cpp model file from path. This is a fallible,
// seconds-scale operation: callers should run it off whatever goroutine
// needs to stay responsive.
func Load(path string) (*Model, error) {
	m, err := whisperlib.New(path)
	if err != nil {
		return nil, fmt.Errorf("asr: load model %q: %w", path, err)
	}
	return &Model{inner: m}, nil
}

// Close releases the underlying whisper.cpp model.
func (m *Model) Close() error {
	if m == nil || m.inner == nil {
		return nil
	}
	return m.inner.Close()
}

// decodeThreads is the worker-thread count handed to whisper.cpp's decoder.
// A dictation utterance is a few seconds of audio at most; beyond a handful
// of threads there's nothing left to parallelize and it just steals CPU
// from whatever application has focus.
const decodeThreads = 4

// Run transcribes 16kHz mono float32 samples. Decoding is greedy
// (beam size 1) rather than beam search, since a beam search only pays for
// itself on long-form audio and this never sees more than a few seconds at
// a time; timestamps are left off since only the joined text is returned.
// A fresh Context is created per call, so no prior utterance's text ever
// leaks in as decoding context. language may be "" to let whisper.cpp
// auto-detect, or an ISO-2 hint.
func (m *Model) Run(samples []float32, language string) (string, error) {
	if m == nil || m.inner == nil {
		return "", ErrModelNotLoaded
	}

	ctx, err := m.inner.NewContext()
	if err != nil {
		return "", fmt.Errorf("asr: create context: %w", err)
	}

	if language != "" {
		_ = ctx.SetLanguage(language)
	} else {
		_ = ctx.SetLanguage("auto")
	}
	ctx.SetTranslate(false)
	ctx.SetThreads(decodeThreads)
	ctx.SetBeamSize(1)
	ctx.SetTokenTimestamps(false)

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("asr: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := ctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("asr: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
