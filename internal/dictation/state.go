// Package dictation implements the dictation state machine: DictationState,
// AppState, and the Controller that drives transitions between them.
package dictation

// Kind identifies which variant of the DictationState tagged union a State
// value holds. Exactly one Kind is active per State; fields that don't
// belong to the active Kind are left at their zero value.
type Kind int

const (
	Idle Kind = iota
	Recording
	Processing
	Translating
	Downloading
	CorrectionPreview
	TranslationPreview
	ErrorState
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Processing:
		return "processing"
	case Translating:
		return "translating"
	case Downloading:
		return "downloading"
	case CorrectionPreview:
		return "correction_preview"
	case TranslationPreview:
		return "translation_preview"
	case ErrorState:
		return "error"
	default:
		return "unknown"
	}
}

// CorrectionApplied records one vocabulary substitution made in a
// transcript. Position is the UTF-8 byte offset in the resulting text at
// which Replacement was written.
type CorrectionApplied struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Position    int    `json:"position"`
}

// State is a tagged union: a frontend renders it by switching on Kind.
// State.MarshalJSON (state_json.go) gives it a {"type": ...} wire shape.
type State struct {
	Kind Kind

	// Recording
	DurationMs         int64
	PartialText        *string
	PartialTranslation *string
	SourceLang         string
	TargetLang         string

	// Downloading
	Progress float64

	// CorrectionPreview
	Text         string
	OriginalText string
	Corrections  []CorrectionApplied

	// TranslationPreview / shared with CorrectionPreview's OriginalText
	SourceText     string
	TranslatedText string

	// ErrorState
	Message string
}

func NewIdle() State { return State{Kind: Idle} }

func NewRecording(durationMs int64, sourceLang, targetLang string) State {
	return State{Kind: Recording, DurationMs: durationMs, SourceLang: sourceLang, TargetLang: targetLang}
}

func NewProcessing() State { return State{Kind: Processing} }

func NewTranslating() State { return State{Kind: Translating} }

func NewDownloading(progress float64) State {
	return State{Kind: Downloading, Progress: progress}
}

func NewCorrectionPreview(text, original string, corrections []CorrectionApplied) State {
	return State{Kind: CorrectionPreview, Text: text, OriginalText: original, Corrections: corrections}
}

func NewTranslationPreview(sourceText, translatedText, sourceLang, targetLang string) State {
	return State{
		Kind:           TranslationPreview,
		SourceText:     sourceText,
		TranslatedText: translatedText,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
	}
}

func NewError(message string) State { return State{Kind: ErrorState, Message: message} }

// AppState is the Controller's private aggregate: the current observable
// State plus every piece of configuration and pending-text bookkeeping the
// transition table needs. It is always accessed under Controller.mu.
type AppState struct {
	Current State

	SelectedModel     string
	Language          string // "auto" or ISO-2
	TranslationOn     bool
	TranslationTarget string
	SmartPaste        bool
	VocabEnabled      bool

	// Pending-text slots backing the *Preview states.
	PendingOriginal   string
	PendingCorrected  string
	PendingSource     string
	PendingTranslated string
}
