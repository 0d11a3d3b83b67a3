package dictation

import "encoding/json"

// MarshalJSON renders State as a tagged union with a "type" discriminator,
// the wire shape a frontend listening on the UI event bus expects.
func (s State) MarshalJSON() ([]byte, error) {
	base := map[string]interface{}{"type": s.Kind.String()}

	switch s.Kind {
	case Recording:
		base["duration_ms"] = s.DurationMs
		base["source_lang"] = s.SourceLang
		base["target_lang"] = s.TargetLang
		if s.PartialText != nil {
			base["partial_text"] = *s.PartialText
		}
		if s.PartialTranslation != nil {
			base["partial_translation"] = *s.PartialTranslation
		}
	case Downloading:
		base["progress"] = s.Progress
	case CorrectionPreview:
		base["text"] = s.Text
		base["original_text"] = s.OriginalText
		base["corrections"] = s.Corrections
	case TranslationPreview:
		base["source_text"] = s.SourceText
		base["translated_text"] = s.TranslatedText
		base["source_lang"] = s.SourceLang
		base["target_lang"] = s.TargetLang
	case ErrorState:
		base["message"] = s.Message
	}

	return json.Marshal(base)
}
