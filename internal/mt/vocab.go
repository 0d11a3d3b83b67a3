package mt

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Reserved NLLB special tokens. The language tag tokens themselves (e.g.
// "eng_Latn") also occupy ids in the vocabulary, looked up by name.
const (
	tokenPad = "<pad>"
	tokenEOS = "</s>"
	tokenUNK = "<unk>"
)

// vocab is a minimal whitespace/subword token<->id table loaded from the
// plain-text vocab file shipped next to an NLLB ONNX export (one "token id"
// pair per line, the same shape HF tokenizers write to vocab.txt). No Go
// SentencePiece binding here has a confirmed, documented API to encode and
// decode against, so that lookup is implemented directly against this
// table instead.
type vocab struct {
	tokenToID map[string]int32
	idToToken map[int32]string
}

func loadVocab(path string) (*vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mt: open vocab %q: %w", path, err)
	}
	defer f.Close()

	v := &vocab{
		tokenToID: make(map[string]int32),
		idToToken: make(map[int32]string),
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		var id int32
		if _, err := fmt.Sscanf(fields[1], "%d", &id); err != nil {
			continue
		}
		v.tokenToID[fields[0]] = id
		v.idToToken[id] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mt: read vocab %q: %w", path, err)
	}
	return v, nil
}

func (v *vocab) id(token string) int32 {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return v.tokenToID[tokenUNK]
}

// encode does greedy whitespace tokenization with per-word subword fallback:
// a whole word found in the vocabulary maps directly, otherwise the word is
// split into a leading piece plus "##"-continuation pieces the way WordPiece
// vocabularies do, falling back to tokenUNK for anything unmatched.
func (v *vocab) encode(text string) []int32 {
	words := strings.Fields(text)
	ids := make([]int32, 0, len(words)+1)
	for _, w := range words {
		ids = append(ids, v.encodeWord(w)...)
	}
	return ids
}

func (v *vocab) encodeWord(word string) []int32 {
	if id, ok := v.tokenToID[word]; ok {
		return []int32{id}
	}

	var ids []int32
	rest := word
	first := true
	for len(rest) > 0 {
		piece := rest
		matched := false
		for len(piece) > 0 {
			candidate := piece
			if !first {
				candidate = "##" + piece
			}
			if id, ok := v.tokenToID[candidate]; ok {
				ids = append(ids, id)
				rest = rest[len(piece):]
				matched = true
				break
			}
			piece = piece[:len(piece)-1]
		}
		if !matched {
			ids = append(ids, v.id(tokenUNK))
			break
		}
		first = false
	}
	return ids
}

// decode joins token ids back into text, stripping "##" continuation
// markers and stopping at the end-of-sequence token.
func (v *vocab) decode(ids []int32) string {
	var sb strings.Builder
	for _, id := range ids {
		tok, ok := v.idToToken[id]
		if !ok {
			continue
		}
		if tok == tokenEOS {
			break
		}
		if tok == tokenPad {
			continue
		}
		if strings.HasPrefix(tok, "##") {
			sb.WriteString(tok[2:])
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
