package asr

// newWorkerWithModel starts a worker pre-seeded with a stub model, so tests
// can exercise the drain policy without loading a real whisper.cpp file.
func newWorkerWithModel(m modelRunner) *Worker {
	w := &Worker{
		mailbox:   make(chan interface{}, 16),
		finalCh:   make(chan FinalResponse, 4),
		partialCh: make(chan string, 4),
		model:     m,
	}
	go w.run()
	return w
}
