package dictation

import (
	"time"

	"github.com/trevorstenson/dictate/internal/asr"
	"github.com/trevorstenson/dictate/internal/events"
	"github.com/trevorstenson/dictate/internal/history"
	"github.com/trevorstenson/dictate/internal/logging"
	"github.com/trevorstenson/dictate/internal/mt"
	"github.com/trevorstenson/dictate/internal/vocabulary"
)

// Capture is the slice of internal/audioio.Capture the Controller depends
// on, narrowed so tests can substitute a fake device.
type Capture interface {
	Start() error
	Snapshot() []float32
	Stop() []float32
}

// AsrWorker is the slice of internal/asr.Worker the Controller depends on.
type AsrWorker interface {
	LoadModel(path string)
	SetLanguage(lang string)
	Final(samples []float32)
	Partial(samples []float32)
	FinalChan() <-chan asr.FinalResponse
	PartialChan() <-chan string
	Shutdown()
}

// MtWorker is the slice of internal/mt.Worker the Controller depends on.
type MtWorker interface {
	LoadModel(path, ortLibPath string)
	SetLanguages(source, target string)
	Final(job mt.Job)
	Partial(job mt.Job)
	FinalChan() <-chan mt.FinalResponse
	PartialChan() <-chan string
	Shutdown()
}

// Paster is the paste primitive: write text to the clipboard and simulate
// a paste keystroke into the focused application.
type Paster interface {
	Paste(text string, smartPaste bool) error
}

// PermissionProber probes platform permissions at Idle→Recording.
type PermissionProber interface {
	AccessibilityGranted() bool
}

// VocabProvider supplies the currently enabled vocabulary entries.
type VocabProvider interface {
	Entries() []vocabulary.Entry
}

// HistoryStore is the slice of internal/history the Controller depends on.
// history.AddEntry/UpdateLatestText are plain package funcs, not methods on
// a stateful handle, so this interface is satisfied by history.Store, a
// zero-value adapter living in that package.
type HistoryStore interface {
	AddEntry(entry history.Entry) error
	UpdateLatestText(text string) error
}

// ModelResolver is the "ensure model present" collaborator: resolve name to
// an on-disk path, downloading it first if absent and reporting fractional
// progress along the way. Satisfied by modelmanager.Resolver, which wraps
// modelmanager.Ensure for the appropriate Kind.
type ModelResolver interface {
	Ensure(name string, onProgress func(progress float64)) (path string, err error)
}

// Clock abstracts time.Now so tests can control duration-ticker output
// deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Deps bundles every external collaborator the Controller needs. Every
// field is an interface so tests can substitute fakes/stubs without real
// hardware, models, or platform permissions.
type Deps struct {
	Capture    Capture
	Asr        AsrWorker
	Mt         MtWorker
	Paste      Paster
	Perms      PermissionProber
	Vocab      VocabProvider
	History    HistoryStore
	AsrModels  ModelResolver
	MtModels   ModelResolver
	Bus        *events.Bus
	Log        logging.Logger
	Clock      Clock
	SampleRate int
}
