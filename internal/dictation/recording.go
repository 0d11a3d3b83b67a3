package dictation

import (
	"time"

	"github.com/trevorstenson/dictate/internal/audioio"
)

// Hotkey is the single toggle input. Its effect depends entirely on the
// current state.
func (c *Controller) Hotkey() {
	switch c.currentKind() {
	case Idle:
		c.startRecording()
	case Recording:
		c.stopRecording()
	case ErrorState:
		c.setState(NewIdle())
	default:
		// Processing, Translating, Downloading, *Preview: ignored.
	}
}

// Cancel drops the in-progress recording without transcribing it. No final
// ASR/MT job has been sent yet at this point (Cancel only applies during
// Recording), so there is nothing to abort; a late partial response is
// ignored by the helper loops' recGen check, and buffered stale responses
// are drained before the next recording's loops or final wait read them.
func (c *Controller) Cancel() {
	switch c.currentKind() {
	case Recording:
		c.stopStreaming()
		c.deps.Capture.Stop() // drop the samples; do not transcribe them
		c.setState(NewIdle())
	case ErrorState:
		c.setState(NewIdle())
	default:
		// Not meaningful outside Recording/Error; ignored.
	}
}

func (c *Controller) startRecording() {
	if !c.deps.Perms.AccessibilityGranted() {
		c.setState(NewError("accessibility permission required"))
		return
	}
	if err := c.deps.Capture.Start(); err != nil {
		c.setState(NewError("microphone unavailable: " + err.Error()))
		return
	}

	// Discard any partial left over from a previous recording before the
	// new loops start reading.
	drainStale(c.deps.Asr.PartialChan())
	drainStale(c.deps.Mt.PartialChan())

	c.mu.Lock()
	c.streamingActive = true
	c.recGen++
	gen := c.recGen
	c.recordingStart = c.deps.Clock.Now()
	lang := c.app.Language
	target := c.app.TranslationTarget
	c.mu.Unlock()

	c.setState(NewRecording(0, lang, target))

	go c.partialASRLoop(gen)
	go c.levelDurationTicker(gen)
}

func (c *Controller) stopRecording() {
	c.stopStreaming()
	samples := c.deps.Capture.Stop()
	if len(samples) == 0 {
		c.setState(NewIdle())
		return
	}

	c.mu.Lock()
	durationMs := c.deps.Clock.Now().Sub(c.recordingStart).Milliseconds()
	c.mu.Unlock()

	c.setState(NewProcessing())
	go c.processFinalASR(samples, durationMs)
}

// stopStreaming clears the cancellation token and bumps recGen so any
// still-running helper goroutine from this recording notices it's stale on
// its next loop iteration.
func (c *Controller) stopStreaming() {
	c.mu.Lock()
	c.streamingActive = false
	c.recGen++
	c.mu.Unlock()
}

func (c *Controller) isStreamingGen(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streamingActive && c.recGen == gen
}

// partialASRLoop sleeps 500 ms, then at ~1 Hz snapshots the buffer, sends a
// Partial job, waits up to 5 s for a response, and — if translation is
// enabled and the partial is non-empty — chains a Partial MT job waited up
// to 1.5 s. Exits as soon as gen is superseded.
func (c *Controller) partialASRLoop(gen int) {
	time.Sleep(partialLoopDelay)
	ticker := time.NewTicker(partialLoopPeriod)
	defer ticker.Stop()

	for c.isStreamingGen(gen) {
		<-ticker.C
		if !c.isStreamingGen(gen) {
			return
		}

		samples := c.deps.Capture.Snapshot()
		if len(samples) == 0 {
			continue
		}

		c.deps.Asr.Partial(samples)
		var partialText *string
		select {
		case text, ok := <-c.deps.Asr.PartialChan():
			if !ok {
				return
			}
			if text != "" {
				partialText = &text
			}
		case <-time.After(partialASRWait):
			continue
		}
		if !c.isStreamingGen(gen) {
			return
		}

		var partialTranslation *string
		if partialText != nil {
			c.mu.Lock()
			translationOn := c.app.TranslationOn
			source := c.app.Language
			target := c.app.TranslationTarget
			c.mu.Unlock()
			if translationOn {
				c.deps.Mt.Partial(mtJob(*partialText, source, target))
				select {
				case mtText, ok := <-c.deps.Mt.PartialChan():
					if ok && mtText != "" {
						partialTranslation = &mtText
					}
				case <-time.After(partialMTWait):
					// translation didn't land in time; skip this tick's update.
				}
			}
		}
		if !c.isStreamingGen(gen) {
			return
		}

		c.mu.Lock()
		c.app.Current.PartialText = partialText
		c.app.Current.PartialTranslation = partialTranslation
		snapshot := c.app.Current
		c.mu.Unlock()
		c.emit(snapshot)
	}
}

// levelDurationTicker runs at ~30 Hz, emitting 48 RMS bars from the last
// ~1.6 s of audio on the side channel and re-emitting the Recording state
// with an updated duration_ms.
func (c *Controller) levelDurationTicker(gen int) {
	ticker := time.NewTicker(tickerPeriod)
	defer ticker.Stop()

	for c.isStreamingGen(gen) {
		<-ticker.C
		if !c.isStreamingGen(gen) {
			return
		}

		samples := c.deps.Capture.Snapshot()
		bars := audioio.Levels(samples, c.deps.SampleRate, levelBarCount)
		c.emitLevels(bars)

		c.mu.Lock()
		c.app.Current.DurationMs = c.deps.Clock.Now().Sub(c.recordingStart).Milliseconds()
		snapshot := c.app.Current
		c.mu.Unlock()
		c.emit(snapshot)
	}
}
