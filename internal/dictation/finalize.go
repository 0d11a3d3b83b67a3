package dictation

import (
	"strings"
	"time"

	"github.com/trevorstenson/dictate/internal/asr"
	"github.com/trevorstenson/dictate/internal/history"
	"github.com/trevorstenson/dictate/internal/mt"
	"github.com/trevorstenson/dictate/internal/vocabulary"
)

func mtJob(text, source, target string) mt.Job {
	return mt.Job{Text: text, SourceLang: source, TargetLang: target}
}

// drainStale discards buffered responses left over from a job that was
// abandoned on timeout, so a later wait can't latch onto a previous
// recording's result.
func drainStale[T any](ch <-chan T) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// waitForFinal reads from ch until a FinalComplete response arrives, a
// stray ModelLoaded is discarded, or deadline passes. ModelLoaded can
// legitimately interleave if a language-driven model swap lands while a
// recording's final job is in flight.
func waitForFinal(ch <-chan asr.FinalResponse, timeout time.Duration) (asr.FinalResponse, bool) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return asr.FinalResponse{}, false
		}
		select {
		case resp := <-ch:
			if resp.Kind == asr.FinalComplete {
				return resp, true
			}
		case <-time.After(remaining):
			return asr.FinalResponse{}, false
		}
	}
}

func waitForMTFinal(ch <-chan mt.FinalResponse, timeout time.Duration) (mt.FinalResponse, bool) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return mt.FinalResponse{}, false
		}
		select {
		case resp := <-ch:
			if resp.Kind == mt.FinalComplete {
				return resp, true
			}
		case <-time.After(remaining):
			return mt.FinalResponse{}, false
		}
	}
}

// processFinalASR drives Processing → {Idle, Translating, CorrectionPreview,
// Error}. It runs off the Controller's call stack (spawned from
// stopRecording) so the caller isn't blocked on up to 60 s of inference.
func (c *Controller) processFinalASR(samples []float32, durationMs int64) {
	drainStale(c.deps.Asr.FinalChan())
	c.deps.Asr.Final(samples)
	resp, ok := waitForFinal(c.deps.Asr.FinalChan(), finalASRTimeout)
	if !ok {
		c.setState(NewError("timed out — try again"))
		return
	}
	if resp.Err != nil {
		c.setState(NewError("transcription failed: " + resp.Err.Error()))
		return
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		c.setState(NewIdle())
		return
	}

	c.mu.Lock()
	vocabOn := c.app.VocabEnabled
	translationOn := c.app.TranslationOn
	sourceLang := c.app.Language
	targetLang := c.app.TranslationTarget
	c.mu.Unlock()

	var corrected string
	var corrections []CorrectionApplied
	if vocabOn {
		corrected, corrections = applyVocab(text, c.deps.Vocab.Entries())
	} else {
		corrected = text
	}

	entry := history.Entry{
		ID:          uint64(c.deps.Clock.Now().UnixMilli()),
		Text:        corrected,
		TimestampMs: c.deps.Clock.Now().UnixMilli(),
		DurationMs:  durationMs,
	}
	if err := c.deps.History.AddEntry(entry); err == nil {
		c.emitHistoryUpdated()
	}

	if translationOn {
		c.setState(NewTranslating())
		drainStale(c.deps.Mt.FinalChan())
		c.deps.Mt.Final(mtJob(corrected, sourceLang, targetLang))
		go c.processFinalMT(corrected, sourceLang, targetLang)
		return
	}

	if vocabOn && len(corrections) > 0 {
		c.mu.Lock()
		c.app.PendingOriginal = text
		c.app.PendingCorrected = corrected
		c.mu.Unlock()
		c.setState(NewCorrectionPreview(corrected, text, corrections))
		return
	}

	c.pasteThenIdle(corrected)
}

// processFinalMT drives Translating → {TranslationPreview, Idle}, falling
// back to pasting the untranslated source text on an MT error or timeout.
func (c *Controller) processFinalMT(sourceText, sourceLang, targetLang string) {
	resp, ok := waitForMTFinal(c.deps.Mt.FinalChan(), finalMTTimeout)
	if !ok || resp.Err != nil {
		c.pasteThenIdle(sourceText)
		return
	}

	c.mu.Lock()
	c.app.PendingSource = sourceText
	c.app.PendingTranslated = resp.Text
	c.mu.Unlock()
	c.setState(NewTranslationPreview(sourceText, resp.Text, sourceLang, targetLang))
}

func applyVocab(text string, entries []vocabulary.Entry) (string, []CorrectionApplied) {
	corrected, applied := vocabulary.Apply(text, entries)
	out := make([]CorrectionApplied, len(applied))
	for i, a := range applied {
		out[i] = CorrectionApplied{Original: a.Original, Replacement: a.Replacement, Position: a.Position}
	}
	return corrected, out
}

// pasteThenIdle pastes text with the configured smart-paste behavior and
// transitions to Idle, or to Error if the paste itself fails.
func (c *Controller) pasteThenIdle(text string) {
	c.mu.Lock()
	smart := c.app.SmartPaste
	c.mu.Unlock()
	if err := c.deps.Paste.Paste(text, smart); err != nil {
		c.setState(NewError("paste failed: " + err.Error()))
		return
	}
	c.setState(NewIdle())
}
