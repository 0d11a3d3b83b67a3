// Package mt implements the translation worker: a single background
// worker owning one loaded NLLB-200 model, mirroring the ASR worker's
// shape exactly (single worker, separate final and partial channels,
// identical drain policy).
package mt

import (
	"fmt"
	"strings"
)

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

// Job is one translation request: text plus the source/target language
// codes in effect when it was submitted.
type Job struct {
	Text       string
	SourceLang string
	TargetLang string
}

type loadModelReq struct{ path, ortLibPath string }
type setLanguagesReq struct {
	source string
	target string
}
type finalReq struct{ job Job }
type partialReq struct{ job Job }
type shutdownReq struct{}

// translatorRunner is the subset of *Model's behavior the worker depends
// on, broken out so tests can substitute a stub instead of a real ONNX
// model directory.
type translatorRunner interface {
	Translate(text, targetNLLB string) (string, error)
}

// service is the worker's single-threaded view of language state and the
// loaded model.
type service struct {
	model       translatorRunner
	sourceLang  string // last value from SetLanguages; translate reads the Job's own languages
	targetLang  string
	modelLoaded bool
}

func newService() *service {
	return &service{sourceLang: "en", targetLang: "en"}
}

// translate trims and passes through empty input, resolves both language
// tags, passes through identical source/target without touching the
// model, and otherwise runs the model, falling back to the trimmed input
// if it returns an empty string.
func (s *service) translate(job Job) (string, error) {
	text := strings.TrimSpace(job.Text)
	if text == "" {
		return "", nil
	}

	targetNLLB, ok := nllbForAppLang(job.TargetLang)
	if !ok {
		return "", fmt.Errorf("mt: unsupported target language %q", job.TargetLang)
	}
	sourceNLLB, ok := resolveSourceNLLB(job.SourceLang, text)
	if !ok {
		return "", fmt.Errorf("mt: unsupported source language %q", job.SourceLang)
	}

	if sourceNLLB == targetNLLB {
		return text, nil
	}

	if !s.modelLoaded {
		return "", fmt.Errorf("mt: model not loaded")
	}

	translated, err := s.model.Translate(text, targetNLLB)
	if err != nil {
		return "", fmt.Errorf("mt: inference failed: %w", err)
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return text, nil
	}
	return translated, nil
}

// Worker is the single long-lived goroutine draining a bounded request
// mailbox, structurally identical to the ASR worker.
type Worker struct {
	mailbox   chan interface{}
	finalCh   chan FinalResponse
	partialCh chan string

	svc *service
}

// NewWorker starts the worker goroutine and returns the handle.
func NewWorker() *Worker {
	w := &Worker{
		mailbox:   make(chan interface{}, 16),
		finalCh:   make(chan FinalResponse, 4),
		partialCh: make(chan string, 4),
		svc:       newService(),
	}
	go w.run()
	return w
}

// FinalChan carries ModelLoaded and FinalComplete responses.
func (w *Worker) FinalChan() <-chan FinalResponse { return w.finalCh }

// PartialChan carries raw trimmed partial translation strings.
func (w *Worker) PartialChan() <-chan string { return w.partialCh }

// LoadModel asynchronously loads an NLLB model directory; the result
// arrives on FinalChan as a ModelLoaded response. ortLibPath is the path to
// the ONNX Runtime shared library (ignored after the first load attempt,
// since the runtime environment is initialized once per process).
func (w *Worker) LoadModel(path, ortLibPath string) {
	w.mailbox <- loadModelReq{path: path, ortLibPath: ortLibPath}
}

// SetLanguages asynchronously records the source/target language codes on
// the worker. source is "auto" or an ISO-2 code; target is always an ISO-2
// code. Translation itself uses the SourceLang/TargetLang carried by each
// Final/Partial Job, not these recorded values.
func (w *Worker) SetLanguages(source, target string) {
	w.mailbox <- setLanguagesReq{source: source, target: target}
}

// Final requests a final translation; the result arrives on FinalChan as a
// FinalComplete response and always wins over any queued Partial.
func (w *Worker) Final(job Job) { w.mailbox <- finalReq{job: job} }

// Partial requests an interim translation; the result (if any) arrives on
// PartialChan, subject to the drain policy.
func (w *Worker) Partial(job Job) { w.mailbox <- partialReq{job: job} }

// Shutdown stops the worker goroutine.
func (w *Worker) Shutdown() { w.mailbox <- shutdownReq{} }

func (w *Worker) run() {
	for req := range w.mailbox {
		switch r := req.(type) {
		case loadModelReq:
			w.handleLoadModel(r)
		case setLanguagesReq:
			w.svc.sourceLang = r.source
			w.svc.targetLang = r.target
		case finalReq:
			w.runFinal(r.job)
		case partialReq:
			if !w.drainAndRunPartial(r.job) {
				return
			}
		case shutdownReq:
			return
		}
	}
}

func (w *Worker) handleLoadModel(r loadModelReq) {
	model, err := Load(r.path, r.ortLibPath)
	if err == nil {
		if closer, ok := w.svc.model.(*Model); ok && closer != nil {
			_ = closer.Close()
		}
		w.svc.model = model
		w.svc.modelLoaded = true
	}
	w.finalCh <- FinalResponse{Kind: ModelLoaded, Err: err}
}

func (w *Worker) runFinal(job Job) {
	text, err := w.svc.translate(job)
	w.finalCh <- FinalResponse{Kind: FinalComplete, Text: text, Err: err}
}

// drainAndRunPartial implements the same drain policy as internal/asr's
// Worker: a later Partial overwrites the held job; a Final stops the drain
// and runs instead once draining finishes; LoadModel/SetLanguages are
// served immediately mid-drain; Shutdown ends the worker.
func (w *Worker) drainAndRunPartial(job Job) bool {
	var pendingFinal *finalReq

drain:
	for pendingFinal == nil {
		select {
		case next := <-w.mailbox:
			switch n := next.(type) {
			case partialReq:
				job = n.job
			case finalReq:
				pendingFinal = &n
			case loadModelReq:
				w.handleLoadModel(n)
			case setLanguagesReq:
				w.svc.sourceLang = n.source
				w.svc.targetLang = n.target
			case shutdownReq:
				return false
			}
		default:
			break drain
		}
	}

	if pendingFinal != nil {
		w.runFinal(pendingFinal.job)
		return true
	}

	text, err := w.svc.translate(job) // partial-path errors are silent; a transient miss just skips a tick
	if err == nil && text != "" {
		w.partialCh <- text
	}
	return true
}
