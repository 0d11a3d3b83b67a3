package vocabulary

import "testing"

func tehEntry() Entry {
	return Entry{ID: 1, Phrase: "teh", Replacement: "the", Enabled: true}
}

func TestApplyCasingAllUpper(t *testing.T) {
	got, _ := Apply("TEH", []Entry{tehEntry()})
	if got != "THE" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyCasingCapitalized(t *testing.T) {
	got, _ := Apply("Teh", []Entry{tehEntry()})
	if got != "The" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyCasingLower(t *testing.T) {
	got, _ := Apply("teh", []Entry{tehEntry()})
	if got != "the" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyWordBoundaryNoDoubleExpand(t *testing.T) {
	entry := Entry{ID: 1, Phrase: "app", Replacement: "application", Enabled: true}
	got, corrections := Apply("The application", []Entry{entry})
	if got != "The application" {
		t.Fatalf("expected no change, got %q", got)
	}
	if len(corrections) != 0 {
		t.Fatalf("expected no corrections, got %+v", corrections)
	}
}

func TestApplyPositionInvariant(t *testing.T) {
	text, corrections := Apply("I like teh cat", []Entry{tehEntry()})
	if text != "I like the cat" {
		t.Fatalf("got %q", text)
	}
	if len(corrections) != 1 {
		t.Fatalf("expected one correction, got %+v", corrections)
	}
	c := corrections[0]
	if text[c.Position:c.Position+len(c.Replacement)] != c.Replacement {
		t.Fatalf("position invariant violated: %+v in %q", c, text)
	}
	if c.Position != 7 {
		t.Fatalf("expected position 7, got %d", c.Position)
	}
}

func TestApplyDisabledEntryIgnored(t *testing.T) {
	entry := tehEntry()
	entry.Enabled = false
	got, corrections := Apply("I like teh cat", []Entry{entry})
	if got != "I like teh cat" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	if len(corrections) != 0 {
		t.Fatalf("expected no corrections, got %+v", corrections)
	}
}

func TestApplyMultipleEntriesSequential(t *testing.T) {
	entries := []Entry{
		{ID: 1, Phrase: "teh", Replacement: "the", Enabled: true},
		{ID: 2, Phrase: "cat", Replacement: "dog", Enabled: true},
	}
	text, corrections := Apply("I like teh cat", entries)
	if text != "I like the dog" {
		t.Fatalf("got %q", text)
	}
	for _, c := range corrections {
		if text[c.Position:c.Position+len(c.Replacement)] != c.Replacement {
			t.Fatalf("position invariant violated: %+v in %q", c, text)
		}
	}
	// sorted ascending
	for i := 1; i < len(corrections); i++ {
		if corrections[i].Position < corrections[i-1].Position {
			t.Fatalf("corrections not sorted ascending: %+v", corrections)
		}
	}
}

func TestApplyNonOverlappingMultipleMatches(t *testing.T) {
	entry := Entry{ID: 1, Phrase: "hi", Replacement: "hello", Enabled: true}
	text, corrections := Apply("hi there, hi again", []Entry{entry})
	if text != "hello there, hello again" {
		t.Fatalf("got %q", text)
	}
	if len(corrections) != 2 {
		t.Fatalf("expected 2 corrections, got %+v", corrections)
	}
	for _, c := range corrections {
		if text[c.Position:c.Position+len(c.Replacement)] != c.Replacement {
			t.Fatalf("position invariant violated: %+v in %q", c, text)
		}
	}
}
