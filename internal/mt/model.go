package mt

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrModelNotLoaded is returned by Translate when no model has been loaded.
var ErrModelNotLoaded = errors.New("mt: no model loaded")

const (
	maxDecodingLength = 256 // generous upper bound for a dictation-length utterance
	beamSize          = 1   // greedy decoding
)

var runtimeInit sync.Once
var runtimeInitErr error

// initRuntime loads and starts the ONNX Runtime shared library exactly
// once per process; the environment is process-global, so a second call
// from a later model load is a no-op.
func initRuntime(sharedLibPath string) error {
	runtimeInit.Do(func() {
		if sharedLibPath != "" {
			ort.SetSharedLibraryPath(sharedLibPath)
		}
		runtimeInitErr = ort.InitializeEnvironment()
	})
	return runtimeInitErr
}

// Model wraps a loaded NLLB-200 ONNX export: separate encoder and decoder
// graphs plus the vocabulary used to tokenize/detokenize around them.
type Model struct {
	encoder *ort.AdvancedSession
	decoder *ort.AdvancedSession
	vocab   *vocab

	encoderIn  *ort.Tensor[int64]
	encoderOut *ort.Tensor[float32]
	decoderIDs *ort.Tensor[int64]
	decoderEnc *ort.Tensor[float32]
	decoderOut *ort.Tensor[float32]

	hiddenSize int
}

// dir layout expected under path: encoder.onnx, decoder.onnx, vocab.txt,
// ONNX Runtime's shared library resolved separately via ortLibPath.
func Load(path, ortLibPath string) (*Model, error) {
	if err := initRuntime(ortLibPath); err != nil {
		return nil, fmt.Errorf("mt: init onnxruntime: %w", err)
	}

	v, err := loadVocab(filepath.Join(path, "vocab.txt"))
	if err != nil {
		return nil, err
	}

	const hiddenSize = 1024 // NLLB-200 distilled-600M hidden size
	const maxTokens = maxDecodingLength

	encPath := filepath.Join(path, "encoder.onnx")
	encIn, err := ort.NewEmptyTensor[int64](ort.NewShape(1, maxTokens))
	if err != nil {
		return nil, fmt.Errorf("mt: alloc encoder input: %w", err)
	}
	encOut, err := ort.NewEmptyTensor[float32](ort.NewShape(1, maxTokens, hiddenSize))
	if err != nil {
		return nil, fmt.Errorf("mt: alloc encoder output: %w", err)
	}
	encInInfo, encOutInfo, err := ort.GetInputOutputInfo(encPath)
	if err != nil {
		return nil, fmt.Errorf("mt: inspect encoder graph: %w", err)
	}
	encSess, err := ort.NewAdvancedSession(
		encPath,
		[]string{encInInfo[0].Name}, []string{encOutInfo[0].Name},
		[]ort.Value{encIn}, []ort.Value{encOut},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("mt: load encoder: %w", err)
	}

	decPath := filepath.Join(path, "decoder.onnx")
	decIDs, err := ort.NewEmptyTensor[int64](ort.NewShape(1, maxTokens))
	if err != nil {
		return nil, fmt.Errorf("mt: alloc decoder ids: %w", err)
	}
	decEnc, err := ort.NewEmptyTensor[float32](ort.NewShape(1, maxTokens, hiddenSize))
	if err != nil {
		return nil, fmt.Errorf("mt: alloc decoder encoder-state: %w", err)
	}
	decOut, err := ort.NewEmptyTensor[float32](ort.NewShape(1, maxTokens, int64(len(v.tokenToID))))
	if err != nil {
		return nil, fmt.Errorf("mt: alloc decoder output: %w", err)
	}
	decInInfo, decOutInfo, err := ort.GetInputOutputInfo(decPath)
	if err != nil {
		return nil, fmt.Errorf("mt: inspect decoder graph: %w", err)
	}
	decSess, err := ort.NewAdvancedSession(
		decPath,
		[]string{decInInfo[0].Name, decInInfo[1].Name}, []string{decOutInfo[0].Name},
		[]ort.Value{decIDs, decEnc}, []ort.Value{decOut},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("mt: load decoder: %w", err)
	}

	return &Model{
		encoder:    encSess,
		decoder:    decSess,
		vocab:      v,
		encoderIn:  encIn,
		encoderOut: encOut,
		decoderIDs: decIDs,
		decoderEnc: decEnc,
		decoderOut: decOut,
		hiddenSize: hiddenSize,
	}, nil
}

// Close releases the ONNX sessions and tensors.
func (m *Model) Close() error {
	if m == nil {
		return nil
	}
	if m.encoder != nil {
		m.encoder.Destroy()
	}
	if m.decoder != nil {
		m.decoder.Destroy()
	}
	if m.encoderIn != nil {
		m.encoderIn.Destroy()
	}
	if m.encoderOut != nil {
		m.encoderOut.Destroy()
	}
	if m.decoderIDs != nil {
		m.decoderIDs.Destroy()
	}
	if m.decoderEnc != nil {
		m.decoderEnc.Destroy()
	}
	if m.decoderOut != nil {
		m.decoderOut.Destroy()
	}
	return nil
}

// Translate runs greedy (beam=1) decoding of text into targetNLLB, forcing
// the decoder's first token to the target language tag — NLLB steers
// translation direction via this prefix token rather than a separate
// language classifier.
func (m *Model) Translate(text, targetNLLB string) (string, error) {
	if m == nil {
		return "", ErrModelNotLoaded
	}

	srcIDs := m.vocab.encode(text)
	encData := m.encoderIn.GetData()
	for i := range encData {
		encData[i] = 0
	}
	for i, id := range srcIDs {
		if i >= len(encData) {
			break
		}
		encData[i] = int64(id)
	}
	if err := m.encoder.Run(); err != nil {
		return "", fmt.Errorf("mt: encoder run: %w", err)
	}

	decoded := []int32{m.vocab.id(targetNLLB)}
	decData := m.decoderIDs.GetData()
	for i := range decData {
		decData[i] = 0
	}
	copy(m.decoderEnc.GetData(), m.encoderOut.GetData())

	eosID := m.vocab.id(tokenEOS)
	for step := 0; step < maxDecodingLength; step++ {
		for i, id := range decoded {
			decData[i] = int64(id)
		}
		if err := m.decoder.Run(); err != nil {
			return "", fmt.Errorf("mt: decoder run: %w", err)
		}

		next := argmaxRow(m.decoderOut.GetData(), len(decoded)-1, len(m.vocab.tokenToID))
		decoded = append(decoded, next)
		if next == eosID {
			break
		}
	}

	return m.vocab.decode(decoded[1:]), nil
}

// argmaxRow returns the highest-scoring vocabulary id at decoding step row
// within a flattened [steps, vocabSize] logits tensor.
func argmaxRow(logits []float32, row, vocabSize int) int32 {
	base := row * vocabSize
	best := 0
	bestScore := logits[base]
	for i := 1; i < vocabSize; i++ {
		if logits[base+i] > bestScore {
			bestScore = logits[base+i]
			best = i
		}
	}
	return int32(best)
}
