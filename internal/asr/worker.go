package asr

import "strings"

// FinalKind distinguishes the two message shapes carried on Worker's final
// channel.
type FinalKind int

const (
	ModelLoaded FinalKind = iota
	FinalComplete
)

// FinalResponse is one message on Worker's final channel.
type FinalResponse struct {
	Kind FinalKind
	Text string
	Err  error
}

type loadModelReq struct{ path string }
type setLanguageReq struct{ lang string }
type finalReq struct{ samples []float32 }
type partialReq struct{ samples []float32 }
type shutdownReq struct{}

// Worker is the single long-lived goroutine draining a bounded request
// mailbox: exactly one whisper.cpp model is ever loaded at a time, and a
// Final request always wins over a queued Partial for the same recording.
type Worker struct {
	mailbox   chan interface{}
	finalCh   chan FinalResponse
	partialCh chan string

	model modelRunner
	lang  string
}

// modelRunner is the subset of *Model's behavior the worker depends on,
// broken out so tests can substitute a stub instead of a real whisper.cpp
// model file.
type modelRunner interface {
	Run(samples []float32, language string) (string, error)
}

// NewWorker starts the worker goroutine and returns the handle.
func NewWorker() *Worker {
	w := &Worker{
		mailbox:   make(chan interface{}, 16),
		finalCh:   make(chan FinalResponse, 4),
		partialCh: make(chan string, 4),
	}
	go w.run()
	return w
}

// FinalChan carries ModelLoaded and FinalComplete responses.
func (w *Worker) FinalChan() <-chan FinalResponse { return w.finalCh }

// PartialChan carries raw trimmed partial transcript strings.
func (w *Worker) PartialChan() <-chan string { return w.partialCh }

// LoadModel asynchronously loads a model from path; the result arrives on
// FinalChan as a ModelLoaded response.
func (w *Worker) LoadModel(path string) { w.mailbox <- loadModelReq{path: path} }

// SetLanguage asynchronously updates the language hint used by subsequent
// Run calls. Empty string lets whisper.cpp auto-detect.
func (w *Worker) SetLanguage(lang string) { w.mailbox <- setLanguageReq{lang: lang} }

// Final requests a final transcription of samples; the result arrives on
// FinalChan as a FinalComplete response and always wins over any queued
// Partial for the same recording.
func (w *Worker) Final(samples []float32) { w.mailbox <- finalReq{samples: samples} }

// Partial requests an interim transcription of samples; the result (if any)
// arrives on PartialChan, subject to the drain policy.
func (w *Worker) Partial(samples []float32) { w.mailbox <- partialReq{samples: samples} }

// Shutdown stops the worker goroutine.
func (w *Worker) Shutdown() { w.mailbox <- shutdownReq{} }

func (w *Worker) run() {
	for req := range w.mailbox {
		switch r := req.(type) {
		case loadModelReq:
			w.handleLoadModel(r)
		case setLanguageReq:
			w.lang = r.lang
		case finalReq:
			w.runFinal(r.samples)
		case partialReq:
			if !w.drainAndRunPartial(r.samples) {
				return
			}
		case shutdownReq:
			return
		}
	}
}

func (w *Worker) handleLoadModel(r loadModelReq) {
	model, err := Load(r.path)
	if err == nil {
		if closer, ok := w.model.(*Model); ok && closer != nil {
			_ = closer.Close()
		}
		w.model = model
	}
	w.finalCh <- FinalResponse{Kind: ModelLoaded, Err: err}
}

func (w *Worker) runFinal(samples []float32) {
	text, err := w.runModel(samples)
	w.finalCh <- FinalResponse{Kind: FinalComplete, Text: text, Err: err}
}

// drainAndRunPartial implements the worker's back-pressure/drain policy.
// Before running a popped Partial, it non-blockingly drains the mailbox:
// a later Partial overwrites the held samples; a Final stops the drain,
// is remembered, and runs instead of the Partial once draining finishes;
// LoadModel and SetLanguage are served/applied immediately and draining
// continues; Shutdown ends the worker (returns false).
func (w *Worker) drainAndRunPartial(samples []float32) bool {
	var pendingFinal *finalReq

drain:
	for pendingFinal == nil {
		select {
		case next := <-w.mailbox:
			switch n := next.(type) {
			case partialReq:
				samples = n.samples
			case finalReq:
				pendingFinal = &n
			case loadModelReq:
				w.handleLoadModel(n)
			case setLanguageReq:
				w.lang = n.lang
			case shutdownReq:
				return false
			}
		default:
			break drain
		}
	}

	if pendingFinal != nil {
		w.runFinal(pendingFinal.samples)
		return true
	}

	text, _ := w.runModel(samples) // partial-path errors are silent; a transient miss just skips a tick
	w.partialCh <- strings.TrimSpace(text)
	return true
}

func (w *Worker) runModel(samples []float32) (string, error) {
	if w.model == nil {
		return "", ErrModelNotLoaded
	}
	return w.model.Run(samples, w.lang)
}
