// Package modelmanager resolves configured ASR/MT model names to on-disk
// paths under the user's data directory, downloading them on first use and
// reporting progress.
package modelmanager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Kind distinguishes the two model families tracked by this package.
type Kind int

const (
	ASR Kind = iota
	MT
)

// Info describes one downloadable model.
type Info struct {
	Name        string
	Filename    string
	SizeMB      int
	Description string
}

// asrModels lists the supported whisper.cpp ggml models: the usual
// English-only sizes plus their multilingual counterparts, since the
// Controller's language-aware model swap needs a multilingual target to
// switch to when the source language isn't English.
var asrModels = []Info{
	{Name: "tiny.en", Filename: "ggml-tiny.en.bin", SizeMB: 78, Description: "Tiny English-only model — fastest, least accurate"},
	{Name: "base.en", Filename: "ggml-base.en.bin", SizeMB: 148, Description: "Base English-only model — good balance of speed and accuracy"},
	{Name: "small.en", Filename: "ggml-small.en.bin", SizeMB: 488, Description: "Small English-only model — more accurate, slower"},
	{Name: "medium.en", Filename: "ggml-medium.en.bin", SizeMB: 1530, Description: "Medium English-only model — high accuracy, slow"},
	{Name: "base.en-q8_0", Filename: "ggml-base.en-q8_0.bin", SizeMB: 82, Description: "Base English-only quantized model — fast with good accuracy"},
	{Name: "tiny", Filename: "ggml-tiny.bin", SizeMB: 75, Description: "Tiny multilingual model"},
	{Name: "base", Filename: "ggml-base.bin", SizeMB: 142, Description: "Base multilingual model"},
	{Name: "small", Filename: "ggml-small.bin", SizeMB: 466, Description: "Small multilingual model"},
	{Name: "medium", Filename: "ggml-medium.bin", SizeMB: 1500, Description: "Medium multilingual model"},
}

// EnglishOnlyEquivalent maps a multilingual model name to its English-only
// counterpart, and vice versa, for the Controller's language-aware swap.
// Returns ("", false) if name has no known counterpart (e.g. the quantized
// base.en-q8_0 variant, which has no multilingual sibling in this table).
func EnglishOnlyEquivalent(name string, wantEnglish bool) (string, bool) {
	pairs := map[string]string{"tiny.en": "tiny", "base.en": "base", "small.en": "small", "medium.en": "medium"}
	if wantEnglish {
		for en, multi := range pairs {
			if multi == name {
				return en, true
			}
		}
		return "", false
	}
	if multi, ok := pairs[name]; ok {
		return multi, true
	}
	return "", false
}

// mtModels lists the single distributed NLLB export; it has no filename
// suffix of its own, the model directory itself is the unit published to
// the model host.
var mtModels = []Info{
	{Name: "nllb-200-distilled-600M-int8", Filename: "nllb-200-distilled-600M-int8", SizeMB: 600, Description: "NLLB-200 distilled 600M, int8 quantized"},
}

// var, not const, so tests can point Download at a local httptest server.
var asrBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"
var mtBaseURL = "https://huggingface.co/dictate-models/nllb-200-onnx/resolve/main"

func modelsOf(kind Kind) []Info {
	if kind == MT {
		return mtModels
	}
	return asrModels
}

func baseURLOf(kind Kind) string {
	if kind == MT {
		return mtBaseURL
	}
	return asrBaseURL
}

// AvailableModels lists the known models for kind.
func AvailableModels(kind Kind) []Info {
	return modelsOf(kind)
}

func find(kind Kind, name string) (Info, bool) {
	for _, m := range modelsOf(kind) {
		if m.Name == name {
			return m, true
		}
	}
	return Info{}, false
}

// ModelsDir returns the directory models of kind are stored under, rooted
// at the XDG data directory.
func ModelsDir(kind Kind) string {
	if kind == MT {
		return filepath.Join(xdg.DataHome, "dictate", "models", "nllb")
	}
	return filepath.Join(xdg.DataHome, "dictate", "models")
}

// ModelPath resolves name to its on-disk path, if name is known.
func ModelPath(kind Kind, name string) (string, error) {
	info, ok := find(kind, name)
	if !ok {
		return "", fmt.Errorf("modelmanager: unknown model %q", name)
	}
	return filepath.Join(ModelsDir(kind), info.Filename), nil
}

// ModelExists reports whether name's file (or directory, for MT) is
// already present on disk.
func ModelExists(kind Kind, name string) bool {
	path, err := ModelPath(kind, name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
