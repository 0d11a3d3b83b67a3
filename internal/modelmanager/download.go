package modelmanager

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc is invoked after every chunk written to disk, with the bytes
// downloaded so far and the total from the response's Content-Length (0 if
// the server didn't send one).
type ProgressFunc func(downloaded, total int64)

// Download fetches name's model file into ModelsDir(kind), creating the
// directory if needed, and reports progress via onProgress: a plain
// streamed GET with a byte-count callback invoked per chunk, no retry or
// resume logic.
func Download(kind Kind, name string, onProgress ProgressFunc) (string, error) {
	info, ok := find(kind, name)
	if !ok {
		return "", fmt.Errorf("modelmanager: unknown model %q", name)
	}

	dir := ModelsDir(kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("modelmanager: create models dir: %w", err)
	}

	dest := filepath.Join(dir, info.Filename)
	url := fmt.Sprintf("%s/%s", baseURLOf(kind), info.Filename)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("modelmanager: download %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("modelmanager: download %q: server returned %s", name, resp.Status)
	}

	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("modelmanager: create %q: %w", dest, err)
	}
	defer file.Close()

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	pw := &progressWriter{w: file, onProgress: onProgress, total: total}
	if _, err := io.Copy(pw, resp.Body); err != nil {
		return "", fmt.Errorf("modelmanager: write %q: %w", dest, err)
	}

	return dest, nil
}

// progressWriter wraps an io.Writer, invoking onProgress after each write
// with the running total written.
type progressWriter struct {
	w          io.Writer
	onProgress ProgressFunc
	downloaded int64
	total      int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.downloaded += int64(n)
	if p.onProgress != nil {
		p.onProgress(p.downloaded, p.total)
	}
	return n, err
}
