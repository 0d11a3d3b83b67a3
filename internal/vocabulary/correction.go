package vocabulary

import (
	"regexp"
	"strings"
	"unicode"
)

// Correction records one substitution made by Apply. Position is the UTF-8
// byte offset in the returned text at which Replacement begins.
type Correction struct {
	Original    string
	Replacement string
	Position    int
}

// Apply runs every enabled entry, in list order, against text and returns
// the corrected text plus the corrections made, sorted by ascending
// Position in the final text.
//
// Each entry's phrase is matched case-insensitively at word boundaries;
// matches are non-overlapping. Replacement casing is derived from the
// matched substring: all-uppercase matches upper-case the whole
// replacement, a capitalized match upper-cases only the replacement's
// first letter, anything else leaves the replacement as stored.
func Apply(text string, entries []Entry) (string, []Correction) {
	working := text
	var corrections []Correction

	for _, entry := range entries {
		if !entry.Enabled || entry.Phrase == "" {
			continue
		}

		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(entry.Phrase) + `\b`)
		if err != nil {
			continue
		}

		matches := re.FindAllStringIndex(working, -1)
		if len(matches) == 0 {
			continue
		}

		var sb strings.Builder
		lastEnd := 0
		thisEntryDeltas := make([]delta, 0, len(matches))

		for _, m := range matches {
			start, end := m[0], m[1]
			sb.WriteString(working[lastEnd:start])

			matched := working[start:end]
			replacement := casedReplacement(matched, entry.Replacement)

			pos := sb.Len()
			sb.WriteString(replacement)

			corrections = append(corrections, Correction{
				Original:    matched,
				Replacement: replacement,
				Position:    pos,
			})
			thisEntryDeltas = append(thisEntryDeltas, delta{end: end, amount: len(replacement) - (end - start)})

			lastEnd = end
		}
		sb.WriteString(working[lastEnd:])
		working = sb.String()

		// Earlier entries' recorded corrections live at positions in the
		// pre-this-entry text; shift them by the cumulative length change
		// of every edit this entry made before that position.
		shiftEarlierCorrections(corrections[:len(corrections)-len(matches)], thisEntryDeltas)
	}

	sortByPosition(corrections)
	return working, corrections
}

type delta struct {
	end    int // end offset (old coordinates) of the edit
	amount int // signed length change introduced by the edit
}

func shiftEarlierCorrections(earlier []Correction, deltas []delta) {
	for i := range earlier {
		shift := 0
		for _, d := range deltas {
			if d.end <= earlier[i].Position {
				shift += d.amount
			}
		}
		earlier[i].Position += shift
	}
}

func sortByPosition(c []Correction) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].Position < c[j-1].Position; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

func casedReplacement(matched, replacement string) string {
	if isAllUpper(matched) {
		return strings.ToUpper(replacement)
	}
	if isFirstUpper(matched) {
		return upperFirst(replacement)
	}
	return replacement
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isFirstUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
