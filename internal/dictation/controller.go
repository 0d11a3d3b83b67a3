package dictation

import (
	"sync"
	"time"

	"github.com/trevorstenson/dictate/internal/events"
	"github.com/trevorstenson/dictate/internal/logging"
)

// Timeouts for the various worker round-trips. Declared as vars, not
// consts, so tests can shrink them rather than waiting out a real 60s/30s
// timeout.
var (
	finalASRTimeout  = 60 * time.Second
	partialASRWait   = 5 * time.Second
	partialMTWait    = 1500 * time.Millisecond
	finalMTTimeout   = 30 * time.Second
	asrModelLoadWait = 30 * time.Second
	mtModelLoadWait  = 60 * time.Second
)

// Tick rates for the recording-phase helper goroutines.
const (
	partialLoopDelay  = 500 * time.Millisecond
	partialLoopPeriod = time.Second
	tickerPeriod      = 33 * time.Millisecond // ~30 Hz
	levelBarCount     = 48
)

// Controller is the state machine at the heart of the system: it owns
// AppState, the capture handle, and the mailbox ends of the ASR/MT workers,
// and is the only component that turns a worker result or a UI command
// into a DictationState transition. It follows a mutex-guarded-struct-plus-
// helper-goroutines shape: the struct fields below are the only mutable
// state, always touched under mu, and the helper goroutines spawned while
// recording read them only through the methods on this type.
type Controller struct {
	mu   sync.Mutex
	app  AppState
	deps Deps

	// streamingActive is the single cancellation token for the helper
	// goroutines spawned while Recording (partial-ASR loop, level/duration
	// ticker): a plain boolean read under mu, not a channel, so the ticker
	// polls it rather than selecting on it.
	streamingActive bool

	// recGen increments every time Recording starts or ends, so a helper
	// goroutine from a superseded recording can detect it's stale before
	// mutating AppState.
	recGen         int
	recordingStart time.Time

	// previewKeysActive records whether Enter/Escape interception should
	// currently be armed; the actual platform hook lives outside this
	// package and polls it.
	previewKeysActive bool
}

// NewController wires deps into a Controller sitting in Idle.
func NewController(deps Deps) *Controller {
	if deps.Clock == nil {
		deps.Clock = realClock{}
	}
	if deps.Log == nil {
		deps.Log = logging.NoOpLogger{}
	}
	return &Controller{
		deps: deps,
		app: AppState{
			Current:           NewIdle(),
			Language:          "auto",
			TranslationTarget: "en",
			SmartPaste:        true,
			VocabEnabled:      true,
		},
	}
}

// State returns the currently observable DictationState.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app.Current
}

// PreviewKeysActive reports whether Enter/Escape should currently be
// intercepted before reaching the focused application.
func (c *Controller) PreviewKeysActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewKeysActive
}

// setState installs s as current under lock, then emits it on the bus.
// Preview-key capture is armed/disarmed to match s's Kind: entering any
// non-preview state disables interception.
func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.app.Current = s
	c.previewKeysActive = s.Kind == CorrectionPreview || s.Kind == TranslationPreview
	c.mu.Unlock()
	c.emit(s)
}

func (c *Controller) emit(s State) {
	if c.deps.Bus == nil {
		return
	}
	c.deps.Bus.Publish(events.Event{Type: events.DictationState, Data: s})
}

func (c *Controller) emitLevels(bars []float32) {
	if c.deps.Bus == nil {
		return
	}
	c.deps.Bus.Publish(events.Event{Type: events.AudioLevels, Data: bars})
}

func (c *Controller) emitHistoryUpdated() {
	if c.deps.Bus == nil {
		return
	}
	c.deps.Bus.Publish(events.Event{Type: events.HistoryUpdated})
}

func (c *Controller) currentKind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app.Current.Kind
}

// ---- Config setters ----

func (c *Controller) SetSelectedModel(name string) {
	c.mu.Lock()
	c.app.SelectedModel = name
	c.mu.Unlock()
}

// SetLanguage updates the source language, switches the ASR model between
// its English-only and multilingual variant if the new language crosses
// that boundary, then resends the language hint to the ASR worker either
// way.
func (c *Controller) SetLanguage(lang string) {
	c.mu.Lock()
	c.app.Language = lang
	c.mu.Unlock()
	c.swapModelForLanguage(lang)
	c.deps.Asr.SetLanguage(lang)
}

func (c *Controller) SetTranslationEnabled(on bool) {
	c.mu.Lock()
	c.app.TranslationOn = on
	c.mu.Unlock()
}

func (c *Controller) SetTranslationTarget(lang string) {
	c.mu.Lock()
	c.app.TranslationTarget = lang
	source := c.app.Language
	c.mu.Unlock()
	c.deps.Mt.SetLanguages(source, lang)
}

func (c *Controller) SetSmartPaste(on bool) {
	c.mu.Lock()
	c.app.SmartPaste = on
	c.mu.Unlock()
}

func (c *Controller) SetVocabEnabled(on bool) {
	c.mu.Lock()
	c.app.VocabEnabled = on
	c.mu.Unlock()
}

// Shutdown tears down the ASR/MT workers. Safe to call once; the workers
// themselves ignore a Shutdown send after they've already exited.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	c.streamingActive = false
	c.mu.Unlock()
	c.deps.Asr.Shutdown()
	c.deps.Mt.Shutdown()
}
