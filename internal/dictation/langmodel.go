package dictation

import (
	"time"

	"github.com/trevorstenson/dictate/internal/asr"
	"github.com/trevorstenson/dictate/internal/modelmanager"
)

// swapModelForLanguage implements the language-aware model swap: if the
// currently selected ASR model is an English-only variant and lang isn't
// "en" (including "auto"), switch to its multilingual equivalent; symmetrically,
// switch back to the English-only variant when lang becomes "en". A swap
// mid-recording is deferred — it only runs from Idle, since swapping models
// while samples are actively being captured would pull the buffer out from
// under the in-flight recording.
func (c *Controller) swapModelForLanguage(lang string) {
	if c.currentKind() != Idle {
		return
	}

	c.mu.Lock()
	current := c.app.SelectedModel
	c.mu.Unlock()
	if current == "" {
		return
	}

	wantEnglish := lang == "en"
	next, ok := modelmanager.EnglishOnlyEquivalent(current, wantEnglish)
	if !ok || next == current {
		return
	}

	c.mu.Lock()
	c.app.SelectedModel = next
	c.mu.Unlock()
	c.loadASRModelAsync(next)
}

// loadASRModelAsync resolves name via the ASR ModelResolver, reporting
// Downloading{progress} along the way, then loads it into the ASR worker
// and waits (up to asrModelLoadWait) for ModelLoaded before returning to
// Idle.
func (c *Controller) loadASRModelAsync(name string) {
	go func() {
		c.setState(NewDownloading(0))
		path, err := c.deps.AsrModels.Ensure(name, func(p float64) {
			c.setState(NewDownloading(p))
		})
		if err != nil {
			c.setState(NewError("model download failed: " + err.Error()))
			return
		}

		c.deps.Asr.LoadModel(path)
		select {
		case resp := <-c.deps.Asr.FinalChan():
			if resp.Kind == asr.ModelLoaded && resp.Err != nil {
				c.setState(NewError("model load failed: " + resp.Err.Error()))
				return
			}
		case <-time.After(asrModelLoadWait):
			c.setState(NewError("model load timed out"))
			return
		}
		c.setState(NewIdle())
	}()
}
