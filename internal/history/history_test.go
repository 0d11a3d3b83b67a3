package history

import "testing"

func withHistoryDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
}

func TestAddEntryCapsAt50(t *testing.T) {
	withHistoryDir(t)

	for i := 0; i < 100; i++ {
		if err := AddEntry(Entry{ID: uint64(i), Text: "entry"}); err != nil {
			t.Fatal(err)
		}
	}

	h := Load()
	if len(h.Entries) != maxEntries {
		t.Fatalf("expected %d entries, got %d", maxEntries, len(h.Entries))
	}
	// Most recently inserted (id 99) must be at index 0.
	if h.Entries[0].ID != 99 {
		t.Fatalf("expected newest entry (id 99) at index 0, got id %d", h.Entries[0].ID)
	}
}

func TestUpdateLatestText(t *testing.T) {
	withHistoryDir(t)

	if err := AddEntry(Entry{ID: 1, Text: "I like teh cat"}); err != nil {
		t.Fatal(err)
	}
	if err := UpdateLatestText("I like the cat"); err != nil {
		t.Fatal(err)
	}

	h := Load()
	if h.Entries[0].Text != "I like the cat" {
		t.Fatalf("expected updated text, got %q", h.Entries[0].Text)
	}
}

func TestUpdateLatestTextOnEmptyHistoryIsNoop(t *testing.T) {
	withHistoryDir(t)
	if err := UpdateLatestText("anything"); err != nil {
		t.Fatal(err)
	}
	if h := Load(); len(h.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(h.Entries))
	}
}

func TestDeleteEntry(t *testing.T) {
	withHistoryDir(t)
	AddEntry(Entry{ID: 1, Text: "a"})
	AddEntry(Entry{ID: 2, Text: "b"})

	if err := DeleteEntry(1); err != nil {
		t.Fatal(err)
	}

	h := Load()
	if len(h.Entries) != 1 || h.Entries[0].ID != 2 {
		t.Fatalf("unexpected entries after delete: %+v", h.Entries)
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	withHistoryDir(t)
	h := Load()
	if len(h.Entries) != 0 {
		t.Fatalf("expected empty history, got %+v", h.Entries)
	}
}
