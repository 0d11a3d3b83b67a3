package dictation

// AcceptCorrections implements CorrectionPreview → Idle: paste the
// vocab-corrected text.
func (c *Controller) AcceptCorrections() {
	if c.currentKind() != CorrectionPreview {
		return
	}
	c.mu.Lock()
	text := c.app.PendingCorrected
	c.mu.Unlock()
	c.pasteThenIdle(text)
}

// UndoCorrections implements CorrectionPreview → Idle: paste the original
// (pre-vocab) text and patch the history entry already written for this
// recording back to it.
func (c *Controller) UndoCorrections() {
	if c.currentKind() != CorrectionPreview {
		return
	}
	c.mu.Lock()
	text := c.app.PendingOriginal
	c.mu.Unlock()
	if err := c.deps.History.UpdateLatestText(text); err == nil {
		c.emitHistoryUpdated()
	}
	c.pasteThenIdle(text)
}

// AcceptTranslation implements TranslationPreview → Idle: paste the
// translated text and patch the history entry to match.
func (c *Controller) AcceptTranslation() {
	if c.currentKind() != TranslationPreview {
		return
	}
	c.mu.Lock()
	text := c.app.PendingTranslated
	c.mu.Unlock()
	if err := c.deps.History.UpdateLatestText(text); err == nil {
		c.emitHistoryUpdated()
	}
	c.pasteThenIdle(text)
}

// RejectTranslation implements TranslationPreview → Idle: paste the
// untranslated source text, leaving the history entry as originally
// written — only AcceptTranslation patches it.
func (c *Controller) RejectTranslation() {
	if c.currentKind() != TranslationPreview {
		return
	}
	c.mu.Lock()
	text := c.app.PendingSource
	c.mu.Unlock()
	c.pasteThenIdle(text)
}
