package mt

import "github.com/pemistahl/lingua-go"

// appLangToNLLB maps the app's configured ISO-639-1 language codes to
// NLLB-200 flores-200 tags.
var appLangToNLLB = map[string]string{
	"en": "eng_Latn",
	"es": "spa_Latn",
	"fr": "fra_Latn",
	"de": "deu_Latn",
	"it": "ita_Latn",
	"pt": "por_Latn",
	"zh": "zho_Hans",
	"ja": "jpn_Jpan",
	"ko": "kor_Hang",
	"ru": "rus_Cyrl",
	"ar": "arb_Arab",
	"hi": "hin_Deva",
	"nl": "nld_Latn",
	"pl": "pol_Latn",
	"tr": "tur_Latn",
	"sv": "swe_Latn",
	"uk": "ukr_Cyrl",
}

// detectedToNLLB maps lingua-go's detected Language to the same NLLB tags.
var detectedToNLLB = map[lingua.Language]string{
	lingua.English:    "eng_Latn",
	lingua.Spanish:    "spa_Latn",
	lingua.French:     "fra_Latn",
	lingua.German:     "deu_Latn",
	lingua.Italian:    "ita_Latn",
	lingua.Portuguese: "por_Latn",
	lingua.Chinese:    "zho_Hans",
	lingua.Japanese:   "jpn_Jpan",
	lingua.Korean:     "kor_Hang",
	lingua.Russian:    "rus_Cyrl",
	lingua.Arabic:     "arb_Arab",
	lingua.Hindi:      "hin_Deva",
	lingua.Dutch:      "nld_Latn",
	lingua.Polish:     "pol_Latn",
	lingua.Turkish:    "tur_Latn",
	lingua.Swedish:    "swe_Latn",
	lingua.Ukrainian:  "ukr_Cyrl",
}

// detectorLanguages is the fixed set lingua-go is built against; restricting
// it to the languages we can map keeps detection fast and its output always
// resolvable by detectedToNLLB.
var detectorLanguages = func() []lingua.Language {
	langs := make([]lingua.Language, 0, len(detectedToNLLB))
	for l := range detectedToNLLB {
		langs = append(langs, l)
	}
	return langs
}()

// languageDetector is package-level and built once: lingua-go's detector
// construction loads per-language n-gram models and is too costly to repeat
// per translation call.
var languageDetector = lingua.NewLanguageDetectorBuilder().
	FromLanguages(detectorLanguages...).
	Build()

// nllbForAppLang resolves one of the app's configured language codes to its
// NLLB tag. ok is false for an unsupported or unknown code.
func nllbForAppLang(code string) (string, bool) {
	tag, ok := appLangToNLLB[code]
	return tag, ok
}

// resolveSourceNLLB resolves the configured source language to an NLLB tag:
// "auto" runs detection over text and falls back to English when detection
// fails or lands on an unsupported language; any other code is resolved
// directly against appLangToNLLB.
func resolveSourceNLLB(sourceLang, text string) (string, bool) {
	if sourceLang != "auto" {
		return nllbForAppLang(sourceLang)
	}

	lang, ok := languageDetector.DetectLanguageOf(text)
	if !ok {
		return "eng_Latn", true
	}
	if tag, ok := detectedToNLLB[lang]; ok {
		return tag, true
	}
	return "eng_Latn", true
}
