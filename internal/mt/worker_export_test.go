package mt

// newWorkerWithModel starts a worker pre-seeded with a stub translator and
// an already-loaded model, so tests can exercise language resolution and
// the drain policy without a real ONNX model directory.
func newWorkerWithModel(m translatorRunner) *Worker {
	svc := newService()
	svc.model = m
	svc.modelLoaded = true
	w := &Worker{
		mailbox:   make(chan interface{}, 16),
		finalCh:   make(chan FinalResponse, 4),
		partialCh: make(chan string, 4),
		svc:       svc,
	}
	go w.run()
	return w
}
