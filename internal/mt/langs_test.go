package mt

import "testing"

func TestNllbForAppLangKnownCodes(t *testing.T) {
	cases := map[string]string{
		"en": "eng_Latn",
		"es": "spa_Latn",
		"zh": "zho_Hans",
		"uk": "ukr_Cyrl",
	}
	for code, want := range cases {
		got, ok := nllbForAppLang(code)
		if !ok {
			t.Fatalf("%q: expected ok", code)
		}
		if got != want {
			t.Fatalf("%q: got %q, want %q", code, got, want)
		}
	}
}

func TestNllbForAppLangUnknownCode(t *testing.T) {
	if _, ok := nllbForAppLang("xx"); ok {
		t.Fatal("expected unknown code to resolve false")
	}
}

func TestResolveSourceNLLBExplicitCode(t *testing.T) {
	tag, ok := resolveSourceNLLB("fr", "anything")
	if !ok || tag != "fra_Latn" {
		t.Fatalf("got (%q, %v)", tag, ok)
	}
}

func TestResolveSourceNLLBAutoDetectsEnglish(t *testing.T) {
	tag, ok := resolveSourceNLLB("auto", "The quick brown fox jumps over the lazy dog.")
	if !ok {
		t.Fatal("expected ok")
	}
	if tag != "eng_Latn" {
		t.Fatalf("expected eng_Latn, got %q", tag)
	}
}

func TestResolveSourceNLLBAutoFallsBackOnEmptyText(t *testing.T) {
	tag, ok := resolveSourceNLLB("auto", "")
	if !ok || tag != "eng_Latn" {
		t.Fatalf("got (%q, %v), want fallback to eng_Latn", tag, ok)
	}
}
