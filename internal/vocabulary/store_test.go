package vocabulary

import (
	"os"
	"path/filepath"
	"testing"
)

func withVocabDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	withVocabDir(t)
	v := Load()
	if len(v.Entries) != 0 {
		t.Fatalf("expected empty vocabulary, got %+v", v.Entries)
	}
}

func TestLoadDefaultsEnabledTrueWhenAbsent(t *testing.T) {
	withVocabDir(t)
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := `{"entries": [{"id": 1, "phrase": "teh", "replacement": "the"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	v := Load()
	if len(v.Entries) != 1 {
		t.Fatalf("expected one entry, got %+v", v.Entries)
	}
	if !v.Entries[0].Enabled {
		t.Fatal("expected enabled to default true when absent from JSON")
	}
}

func TestAddUpdateDeleteEntry(t *testing.T) {
	withVocabDir(t)

	if err := AddEntry(Entry{ID: 1, Phrase: "teh", Replacement: "the", Enabled: true}); err != nil {
		t.Fatal(err)
	}
	if err := UpdateEntry(Entry{ID: 1, Phrase: "teh", Replacement: "the", Enabled: false}); err != nil {
		t.Fatal(err)
	}

	v := Load()
	if v.Entries[0].Enabled {
		t.Fatal("expected entry to be disabled after update")
	}

	if err := DeleteEntry(1); err != nil {
		t.Fatal(err)
	}
	if v := Load(); len(v.Entries) != 0 {
		t.Fatalf("expected entry removed, got %+v", v.Entries)
	}
}
